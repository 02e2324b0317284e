package config

import (
	"fmt"
	"strings"
)

// Service is a dashboard service tab.
type Service string

const (
	ServiceEC2      Service = "EC2"
	ServiceS3       Service = "S3"
	ServiceLambda   Service = "Lambda"
	ServiceDynamoDB Service = "DynamoDB"
)

// Services lists the selectable services in selector order. DynamoDB is
// listed but has no panel yet.
var Services = []Service{ServiceEC2, ServiceS3, ServiceLambda, ServiceDynamoDB}

// Valid reports whether s is one of Services.
func (s Service) Valid() bool {
	for _, known := range Services {
		if s == known {
			return true
		}
	}
	return false
}

// ParseService matches name against Services case-insensitively.
func ParseService(name string) (Service, error) {
	for _, known := range Services {
		if strings.EqualFold(name, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: unknown service %q", ErrConfig, name)
}

// UnmarshalText lets config files spell services in any case.
func (s *Service) UnmarshalText(text []byte) error {
	parsed, err := ParseService(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ServiceNames returns Services as strings, for list widgets.
func ServiceNames() []string {
	names := make([]string, len(Services))
	for i, s := range Services {
		names[i] = string(s)
	}
	return names
}

// Selection is the region/service pair the dashboard shows. It is a value:
// changes produce a new Selection rather than mutating shared state.
type Selection struct {
	Region  string
	Service Service
}

// WithRegion returns a copy of s scoped to region.
func (s Selection) WithRegion(region string) Selection {
	s.Region = region
	return s
}

// WithService returns a copy of s showing service.
func (s Selection) WithService(service Service) Selection {
	s.Service = service
	return s
}
