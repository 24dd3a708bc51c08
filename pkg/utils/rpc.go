package utils

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type Client[T interface{}] struct {
	Conn       *grpc.ClientConn
	Client     T
	Ctx        context.Context
	CancelFunc context.CancelFunc
}

// Call dials url and wraps the connection with newClient.
// User has to `defer Close()`
func Call[T interface{}](url string, timeout time.Duration, newClient func(grpc.ClientConnInterface) T) (Client[T], error) {
	var clientInfo Client[T]
	conn, err := grpc.Dial(
		url,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return clientInfo, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	clientInfo.Conn = conn
	clientInfo.Client = newClient(conn)
	clientInfo.Ctx = ctx
	clientInfo.CancelFunc = cancel
	return clientInfo, nil
}

func (c *Client[T]) Close() {
	c.CancelFunc()
	c.Conn.Close()
}
