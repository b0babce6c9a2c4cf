package common

import (
	"os"
	"sync"
)

const DefaultServiceName = "taskhub"

var (
	serviceName     = DefaultServiceName
	serviceInstance string
	instanceOnce    sync.Once
)

func SetServiceName(name string) {
	if name != "" {
		serviceName = name
	}
}

func GetServiceName() string {
	return serviceName
}

// GetServiceInstance is the host name, or "unknown" when it can not be resolved.
func GetServiceInstance() string {
	instanceOnce.Do(func() {
		host, err := os.Hostname()
		if err != nil || host == "" {
			host = "unknown"
		}
		serviceInstance = host
	})
	return serviceInstance
}
