package emulator

import (
	"context"
	"errors"
	"strconv"

	"github.com/raywall/fast-sns/sns"
	"github.com/raywall/fast-sns/tools/emulator/store"
)

var smsAttributeNames = map[string]bool{
	"DefaultSMSType":                    true,
	"DefaultSenderID":                   true,
	"DeliveryStatusIAMRole":             true,
	"DeliveryStatusSuccessSamplingRate": true,
	"MonthlySpendLimit":                 true,
	"UsageReportS3Bucket":               true,
}

// Seed grava os números configurados em OptedOut.
func (s *Server) Seed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, phone := range s.cfg.OptedOut {
		if !phonePattern.MatchString(phone) {
			return invalidParameter("opted_out: %s is not a valid phone number", phone)
		}
		if err := s.state.save(ctx, kindOptOut, phone, struct{}{}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) smsAttributes(ctx context.Context) (map[string]string, error) {
	attrs, err := load[map[string]string](ctx, s.state, kindSMS, smsAttributesID)
	if errors.Is(err, store.ErrNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return *attrs, nil
}

func (s *Server) getSMSAttributes(ctx context.Context, p params) (any, error) {
	attrs, err := s.smsAttributes(ctx)
	if err != nil {
		return nil, err
	}
	names := p.list("attributes")
	if len(names) == 0 {
		return &sns.GetSMSAttributesOutput{Attributes: attrs}, nil
	}

	out := sns.AttributeMap{}
	for _, n := range names {
		if v, ok := attrs[n]; ok {
			out[n] = v
		}
	}
	return &sns.GetSMSAttributesOutput{Attributes: out}, nil
}

func (s *Server) setSMSAttributes(ctx context.Context, p params) (any, error) {
	updates := p.attributes("attributes")
	for k, v := range updates {
		if !smsAttributeNames[k] {
			return nil, invalidParameter("attributes Reason: Unknown attribute %s", k)
		}
		switch k {
		case "DefaultSMSType":
			if v != "Promotional" && v != "Transactional" {
				return nil, invalidParameter("DefaultSMSType Reason: must be Promotional or Transactional")
			}
		case "MonthlySpendLimit", "DeliveryStatusSuccessSamplingRate":
			if n, err := strconv.Atoi(v); err != nil || n < 0 {
				return nil, invalidParameter("%s Reason: must be a non-negative integer", k)
			}
		}
	}

	attrs, err := s.smsAttributes(ctx)
	if err != nil {
		return nil, err
	}
	for k, v := range updates {
		attrs[k] = v
	}
	if err := s.state.save(ctx, kindSMS, smsAttributesID, attrs); err != nil {
		return nil, err
	}
	return &sns.SetSMSAttributesOutput{}, nil
}

func (s *Server) checkIfPhoneNumberIsOptedOut(ctx context.Context, p params) (any, error) {
	phone := p.get("phoneNumber")
	if !phonePattern.MatchString(phone) {
		return nil, invalidParameter("phoneNumber Reason: input incorrectly formatted")
	}
	out, err := s.state.optedOut(ctx, phone)
	if err != nil {
		return nil, err
	}
	return &sns.CheckIfPhoneNumberIsOptedOutOutput{IsOptedOut: out}, nil
}

func (s *Server) listPhoneNumbersOptedOut(ctx context.Context, p params) (any, error) {
	records, err := s.state.st.List(ctx, kindOptOut)
	if err != nil {
		return nil, err
	}
	phones := make([]string, 0, len(records))
	for _, r := range records {
		phones = append(phones, r.ID)
	}
	page, next, err := paginate(phones, p.get("nextToken"), pageSize)
	if err != nil {
		return nil, err
	}
	return &sns.ListPhoneNumbersOptedOutOutput{PhoneNumbers: page, NextToken: next}, nil
}

func (s *Server) optInPhoneNumber(ctx context.Context, p params) (any, error) {
	phone := p.get("phoneNumber")
	if !phonePattern.MatchString(phone) {
		return nil, invalidParameter("phoneNumber Reason: input incorrectly formatted")
	}
	if err := s.state.remove(ctx, kindOptOut, phone); err != nil {
		return nil, err
	}
	return &sns.OptInPhoneNumberOutput{}, nil
}
