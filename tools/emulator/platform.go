package emulator

import (
	"context"
	"regexp"
	"strconv"

	"github.com/google/uuid"
	"github.com/raywall/fast-sns/sns"
)

var (
	applicationNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,256}$`)

	platforms = map[string]bool{
		"ADM": true, "APNS": true, "APNS_SANDBOX": true, "BAIDU": true,
		"GCM": true, "MPNS": true, "WNS": true,
	}

	endpointAttributes = map[string]bool{"CustomUserData": true, "Enabled": true, "Token": true}
)

func (s *Server) createPlatformApplication(ctx context.Context, p params) (any, error) {
	name := p.get("Name")
	platform := p.get("Platform")
	if !applicationNamePattern.MatchString(name) {
		return nil, invalidParameter("Name")
	}
	if !platforms[platform] {
		return nil, invalidParameter("Platform Reason: %s is not supported", platform)
	}

	appArn := s.arn("app/" + platform + "/" + name)
	app, err := s.state.application(ctx, appArn)
	switch {
	case err == nil:
	case isNotFound(err):
		app = &applicationRecord{
			Arn:        appArn,
			Name:       name,
			Platform:   platform,
			Attributes: map[string]string{"Enabled": "true"},
		}
	default:
		return nil, err
	}
	for k, v := range p.attributes("Attributes") {
		app.Attributes[k] = v
	}
	if err := s.state.save(ctx, kindApplication, appArn, app); err != nil {
		return nil, err
	}
	s.log.Info().Str("application_arn", appArn).Msg("aplicação de plataforma criada")
	return &sns.CreatePlatformApplicationOutput{PlatformApplicationArn: appArn}, nil
}

func (s *Server) deletePlatformApplication(ctx context.Context, p params) (any, error) {
	appArn, err := requireArn(p, "PlatformApplicationArn")
	if err != nil {
		return nil, err
	}
	endpoints, err := s.state.endpointsOf(ctx, appArn)
	if err != nil {
		return nil, err
	}
	for _, ep := range endpoints {
		if err := s.state.remove(ctx, kindEndpoint, ep.Arn); err != nil {
			return nil, err
		}
	}
	return nil, s.state.remove(ctx, kindApplication, appArn)
}

func (s *Server) getPlatformApplicationAttributes(ctx context.Context, p params) (any, error) {
	appArn, err := requireArn(p, "PlatformApplicationArn")
	if err != nil {
		return nil, err
	}
	app, err := s.state.application(ctx, appArn)
	if err != nil {
		return nil, err
	}
	return &sns.GetPlatformApplicationAttributesOutput{Attributes: app.Attributes}, nil
}

func (s *Server) setPlatformApplicationAttributes(ctx context.Context, p params) (any, error) {
	appArn, err := requireArn(p, "PlatformApplicationArn")
	if err != nil {
		return nil, err
	}
	attrs := p.attributes("Attributes")
	if len(attrs) == 0 {
		return nil, invalidParameter("Attributes")
	}
	app, err := s.state.application(ctx, appArn)
	if err != nil {
		return nil, err
	}
	for k, v := range attrs {
		app.Attributes[k] = v
	}
	return nil, s.state.save(ctx, kindApplication, appArn, app)
}

func (s *Server) listPlatformApplications(ctx context.Context, p params) (any, error) {
	apps, err := loadAll[applicationRecord](ctx, s.state, kindApplication)
	if err != nil {
		return nil, err
	}
	page, next, err := paginate(apps, p.get("NextToken"), pageSize)
	if err != nil {
		return nil, err
	}

	out := &sns.ListPlatformApplicationsOutput{PlatformApplications: make([]sns.PlatformApplication, 0, len(page)), NextToken: next}
	for _, app := range page {
		out.PlatformApplications = append(out.PlatformApplications, sns.PlatformApplication{
			PlatformApplicationArn: app.Arn,
			Attributes:             app.Attributes,
		})
	}
	return out, nil
}

func (s *Server) createPlatformEndpoint(ctx context.Context, p params) (any, error) {
	appArn, err := requireArn(p, "PlatformApplicationArn")
	if err != nil {
		return nil, err
	}
	token := p.get("Token")
	if token == "" {
		return nil, invalidParameter("Token")
	}
	app, err := s.state.application(ctx, appArn)
	if err != nil {
		return nil, err
	}

	attrs := map[string]string{"Enabled": "true", "Token": token}
	if data := p.get("CustomUserData"); data != "" {
		attrs["CustomUserData"] = data
	}
	for k, v := range p.attributes("Attributes") {
		if !endpointAttributes[k] {
			return nil, invalidParameter("Attributes Reason: Unknown attribute %s", k)
		}
		attrs[k] = v
	}

	endpoints, err := s.state.endpointsOf(ctx, appArn)
	if err != nil {
		return nil, err
	}
	for _, ep := range endpoints {
		if ep.Attributes["Token"] != token {
			continue
		}
		for k, v := range attrs {
			if ep.Attributes[k] != v {
				return nil, invalidParameter("Token Reason: Endpoint %s already exists with the same Token, but different attributes.", ep.Arn)
			}
		}
		return &sns.CreatePlatformEndpointOutput{EndpointArn: ep.Arn}, nil
	}

	ep := &endpointRecord{
		Arn:            s.arn("endpoint/" + app.Platform + "/" + app.Name + "/" + uuid.NewString()),
		ApplicationArn: appArn,
		Attributes:     attrs,
	}
	if err := s.state.save(ctx, kindEndpoint, ep.Arn, ep); err != nil {
		return nil, err
	}
	s.log.Info().Str("endpoint_arn", ep.Arn).Msg("endpoint criado")
	return &sns.CreatePlatformEndpointOutput{EndpointArn: ep.Arn}, nil
}

func (s *Server) deleteEndpoint(ctx context.Context, p params) (any, error) {
	epArn, err := requireArn(p, "EndpointArn")
	if err != nil {
		return nil, err
	}
	return nil, s.state.remove(ctx, kindEndpoint, epArn)
}

func (s *Server) getEndpointAttributes(ctx context.Context, p params) (any, error) {
	epArn, err := requireArn(p, "EndpointArn")
	if err != nil {
		return nil, err
	}
	ep, err := s.state.endpoint(ctx, epArn)
	if err != nil {
		return nil, err
	}
	return &sns.GetEndpointAttributesOutput{Attributes: ep.Attributes}, nil
}

func (s *Server) setEndpointAttributes(ctx context.Context, p params) (any, error) {
	epArn, err := requireArn(p, "EndpointArn")
	if err != nil {
		return nil, err
	}
	attrs := p.attributes("Attributes")
	if len(attrs) == 0 {
		return nil, invalidParameter("Attributes")
	}
	ep, err := s.state.endpoint(ctx, epArn)
	if err != nil {
		return nil, err
	}
	for k, v := range attrs {
		if !endpointAttributes[k] {
			return nil, invalidParameter("Attributes Reason: Unknown attribute %s", k)
		}
		if k == "Enabled" {
			if _, err := strconv.ParseBool(v); err != nil {
				return nil, invalidParameter("Attributes Reason: Enabled must be true or false")
			}
		}
		ep.Attributes[k] = v
	}
	return nil, s.state.save(ctx, kindEndpoint, epArn, ep)
}

func (s *Server) listEndpointsByPlatformApplication(ctx context.Context, p params) (any, error) {
	appArn, err := requireArn(p, "PlatformApplicationArn")
	if err != nil {
		return nil, err
	}
	if _, err := s.state.application(ctx, appArn); err != nil {
		return nil, err
	}
	endpoints, err := s.state.endpointsOf(ctx, appArn)
	if err != nil {
		return nil, err
	}
	page, next, err := paginate(endpoints, p.get("NextToken"), pageSize)
	if err != nil {
		return nil, err
	}

	out := &sns.ListEndpointsByPlatformApplicationOutput{Endpoints: make([]sns.Endpoint, 0, len(page)), NextToken: next}
	for _, ep := range page {
		out.Endpoints = append(out.Endpoints, sns.Endpoint{EndpointArn: ep.Arn, Attributes: ep.Attributes})
	}
	return out, nil
}
