package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vars(action string, calls int, params map[string]string) map[string]interface{} {
	return map[string]interface{}{"action": action, "calls": calls, "params": params}
}

func TestMatch(t *testing.T) {
	rm, err := NewRuleManager()
	require.NoError(t, err)

	params := map[string]string{"TopicArn": "arn:aws:sns:us-east-1:123:orders", "Message": "hello"}

	rule, err := rm.Compile(`action == "Publish" && params["TopicArn"].endsWith(":orders")`)
	require.NoError(t, err)
	ok, err := rule.Match(vars("Publish", 1, params))
	require.NoError(t, err)
	assert.True(t, ok)

	rule, err = rm.Compile(`calls > 2`)
	require.NoError(t, err)
	ok, err = rule.Match(vars("Publish", 1, params))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompile(t *testing.T) {
	rm, err := NewRuleManager()
	require.NoError(t, err)

	_, err = rm.Compile(`action ==`)
	assert.ErrorContains(t, err, "erro compilação CEL")

	_, err = rm.Compile(`calls + 1`)
	assert.ErrorContains(t, err, "deve resultar em bool")

	_, err = rm.Compile(`unknown == 1`)
	assert.Error(t, err)

	rule, err := rm.Compile(`"Subject" in params && calls % 2 == 0`)
	require.NoError(t, err)

	ok, err := rule.Match(vars("Publish", 2, map[string]string{"Subject": "x"}))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rule.Match(vars("Publish", 3, map[string]string{"Subject": "x"}))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatch_MissingKey(t *testing.T) {
	rm, err := NewRuleManager()
	require.NoError(t, err)

	rule, err := rm.Compile(`params["Subject"] == "x"`)
	require.NoError(t, err)

	_, err = rule.Match(vars("Publish", 1, map[string]string{}))
	assert.Error(t, err)
}
