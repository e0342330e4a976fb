package emulator

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"

	"github.com/raywall/fast-sns/sns"
)

// params lê os parâmetros do protocolo Query (listas "X.member.N" e
// mapas "X.entry.N.key").
type params url.Values

func (p params) get(key string) string { return url.Values(p).Get(key) }

func (p params) has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p params) flag(key string) bool {
	b, _ := strconv.ParseBool(p.get(key))
	return b
}

// list lê prefix.member.1..N.
func (p params) list(prefix string) []string {
	var out []string
	for i := 1; ; i++ {
		key := fmt.Sprintf("%s.member.%d", prefix, i)
		if !p.has(key) {
			return out
		}
		out = append(out, p.get(key))
	}
}

// attributes lê prefix.entry.N.key / prefix.entry.N.value.
func (p params) attributes(prefix string) map[string]string {
	out := map[string]string{}
	for i := 1; ; i++ {
		base := fmt.Sprintf("%s.entry.%d", prefix, i)
		if !p.has(base + ".key") {
			return out
		}
		out[p.get(base+".key")] = p.get(base + ".value")
	}
}

func (p params) tags() []sns.Tag {
	var out []sns.Tag
	for i := 1; ; i++ {
		base := fmt.Sprintf("Tags.member.%d", i)
		if !p.has(base + ".Key") {
			return out
		}
		out = append(out, sns.Tag{Key: p.get(base + ".Key"), Value: p.get(base + ".Value")})
	}
}

// messageAttributes lê prefix.entry.N.Name / .Value.DataType / .Value.StringValue / .Value.BinaryValue.
func (p params) messageAttributes(prefix string) (map[string]sns.MessageAttributeValue, error) {
	out := map[string]sns.MessageAttributeValue{}
	for i := 1; ; i++ {
		base := fmt.Sprintf("%s.entry.%d", prefix, i)
		if !p.has(base + ".Name") {
			return out, nil
		}
		name := p.get(base + ".Name")
		attr := sns.MessageAttributeValue{
			DataType:    p.get(base + ".Value.DataType"),
			StringValue: p.get(base + ".Value.StringValue"),
		}
		if raw := p.get(base + ".Value.BinaryValue"); raw != "" {
			b, err := base64.StdEncoding.DecodeString(raw)
			if err != nil {
				return nil, invalidParameter("MessageAttributes: binary value of %s is not valid base64", name)
			}
			attr.BinaryValue = b
		}
		out[name] = attr
	}
}

func (p params) batchEntries() ([]sns.PublishBatchRequestEntry, error) {
	var out []sns.PublishBatchRequestEntry
	for i := 1; ; i++ {
		base := fmt.Sprintf("PublishBatchRequestEntries.member.%d", i)
		if !p.has(base+".Id") && !p.has(base+".Message") {
			return out, nil
		}
		attrs, err := p.messageAttributes(base + ".MessageAttributes")
		if err != nil {
			return nil, err
		}
		out = append(out, sns.PublishBatchRequestEntry{
			ID:                     p.get(base + ".Id"),
			Message:                p.get(base + ".Message"),
			Subject:                p.get(base + ".Subject"),
			MessageStructure:       p.get(base + ".MessageStructure"),
			MessageAttributes:      attrs,
			MessageDeduplicationID: p.get(base + ".MessageDeduplicationId"),
			MessageGroupID:         p.get(base + ".MessageGroupId"),
		})
	}
}

// flat devolve os parâmetros como map[string]string (primeiro valor de cada chave),
// formato exposto às regras CEL de falhas.
func (p params) flat() map[string]string {
	out := make(map[string]string, len(p))
	for k := range p {
		out[k] = p.get(k)
	}
	return out
}
