package service

import (
	"time"
)

type HealthStatus struct {
	Service string
	Browser string
	Healthy bool
	Checked time.Time
}
type HealthService interface {
	Check() *HealthStatus
}

type healthService struct {
	name  string
	probe func() (string, bool)
}

// NewHealthService reports service liveness. The probe answers whether the
// browser tier could launch Chrome if a check fell through that far.
func NewHealthService(name string, browserReady func() bool) HealthService {
	return &healthService{
		name: name,
		probe: func() (string, bool) {
			if browserReady == nil {
				return "unconfigured", true
			}
			if browserReady() {
				return "available", true
			}
			return "unavailable", true
		},
	}
}

func (h *healthService) Check() *HealthStatus {
	browser, ok := h.probe()
	return &HealthStatus{
		Service: h.name,
		Browser: browser,
		Healthy: ok,
		Checked: time.Now().UTC(),
	}
}
