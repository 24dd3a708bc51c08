package node

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func startRanker(t *testing.T) RankerClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	RegisterRankerServer(server, &NodeServerImpl{Node: NewNode(2)})
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.Dial("bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewRankerClient(conn)
}

func TestRankerRank(t *testing.T) {
	client := startRanker(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	in, err := Request{Links: corpus0, Samples: 20000}.Struct()
	require.NoError(t, err)
	out, err := client.Rank(ctx, in)
	require.NoError(t, err)

	result, err := ResultFromStruct(out)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Id)
	assert.Len(t, result.Iterated, 4)
	assert.Len(t, result.Sampled, 4)
	assert.InDelta(t, 1.0, result.Iterated.Sum(), 1e-6)
	assert.InDelta(t, 0.4292, result.Iterated["2.html"], 1e-3)
}

func TestRankerRankInvalid(t *testing.T) {
	client := startRanker(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	in, err := Request{Links: corpus0, DampingFactor: 2}.Struct()
	require.NoError(t, err)
	_, err = client.Rank(ctx, in)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Rank(ctx, &structpb.Struct{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	empty, err := Request{Links: map[string][]string{}}.Struct()
	require.NoError(t, err)
	_, err = client.Rank(ctx, empty)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRankerHealthCheck(t *testing.T) {
	client := startRanker(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := client.HealthCheck(ctx, &emptypb.Empty{})
	assert.NoError(t, err)
}
