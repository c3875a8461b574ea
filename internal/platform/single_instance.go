package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	minGuardPort = 20000
	maxGuardPort = 39999
)

// InstanceGuard keeps a second GUI instance from starting next to a ringing one.
type InstanceGuard struct {
	listener net.Listener
}

// AcquireSingleInstance binds a localhost port derived from appName.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := GuardAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s busy", ErrAlreadyRunning, address)
	}
	return &InstanceGuard{listener: listener}, nil
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// GuardAddress returns the localhost address used as the lock for appName.
func GuardAddress(appName string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	span := uint32(maxGuardPort - minGuardPort + 1)
	return fmt.Sprintf("127.0.0.1:%d", minGuardPort+int(hash.Sum32()%span))
}
