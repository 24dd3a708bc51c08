package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lioia/pagerank/pkg/node"
	"github.com/lioia/pagerank/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"google.golang.org/grpc"
)

func main() {
	// Read environment variables
	env, err := utils.ReadEnvVars()
	utils.FailOnError("Failed to read environment variables", err)
	utils.InitLog(env.NodeLog, env.ServerLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	n := node.NewNode(env.Workers)

	// Connect to RabbitMQ (optional)
	if env.RabbitHost != "" {
		queueConn, err := amqp.Dial(env.RabbitURL())
		utils.FailOnError("Could not connect to RabbitMQ", err)
		defer queueConn.Close()
		ch, err := queueConn.Channel()
		utils.FailOnError("Failed to open a channel to RabbitMQ", err)
		defer ch.Close()
		work, err := utils.DeclareQueue(env.WorkQueue, ch)
		utils.FailOnError("Failed to declare '%s' queue", err, env.WorkQueue)
		result, err := utils.DeclareQueue(env.ResultQueue, ch)
		utils.FailOnError("Failed to declare '%s' queue", err, env.ResultQueue)
		n.Queue = &node.Queue{Conn: queueConn, Channel: ch, Work: &work, Result: &result}
		go func() {
			if err := n.Consume(ctx); err != nil && !errors.Is(err, context.Canceled) {
				utils.WarnLog("worker", "Queue consumer stopped: %v", err)
				stop()
			}
		}()
	}

	// Running gRPC server in a goroutine
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", env.Host, env.Port))
	utils.FailOnError("Failed to listen for node server", err)
	server := grpc.NewServer()
	node.RegisterRankerServer(server, &node.NodeServerImpl{Node: n})
	go func() {
		fmt.Printf("Starting gRPC server at %s\n", lis.Addr().String())
		if err := server.Serve(lis); err != nil {
			utils.WarnLog("server", "gRPC server stopped: %v", err)
			stop()
		}
	}()

	// Running HTTP API server in a goroutine
	api := node.NewAPIServer(n)
	go func() {
		address := fmt.Sprintf("%s:%d", env.Host, env.APIPort)
		fmt.Printf("Starting API server at %s\n", address)
		if err := api.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.WarnLog("server", "API server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := api.Shutdown(shutdownCtx); err != nil {
		utils.WarnLog("server", "API server shutdown: %v", err)
	}
	server.GracefulStop()
}
