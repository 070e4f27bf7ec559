package command

import (
	"fmt"
	"net"
	"strconv"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-maze/internal/listener"
)

type ListenerConfig struct {
	Protocol listener.Protocol `json:"protocol"`
	Host     string            `json:"host,omitempty"`
	Port     uint16            `json:"port"`
	Path     string            `json:"path,omitempty"`
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}
	if cl.Path != "" && cl.Protocol != listener.ProtocolWebSocket {
		el.Add(fmt.Errorf("path is only valid for websocket listeners"))
	}

	return el.Err()
}

func (cl *ListenerConfig) address() string {
	return net.JoinHostPort(cl.Host, strconv.Itoa(int(cl.Port)))
}

func (cl *ListenerConfig) buildListener() (listener.Listener, error) {
	switch cl.Protocol {
	case listener.ProtocolTCP:
		l, err := listener.ListenTCP(cl.address())
		if err != nil {
			return nil, err
		}
		return l, nil
	case listener.ProtocolWebSocket:
		l, err := listener.ListenWebSocket(cl.address(), cl.Path)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, fmt.Errorf("unknown listener protocol: %v", cl.Protocol)
	}
}
