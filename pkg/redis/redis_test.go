package redis

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supportbot/nlu-go/internal/config"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	host, portStr, _ := strings.Cut(mr.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	client, err := NewRedisClient(context.Background(), config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, portStr, _ := strings.Cut(mr.Addr(), ":")
	port, _ := strconv.Atoi(portStr)
	mr.Close()

	_, err := NewRedisClient(context.Background(), config.RedisConfig{Host: host, Port: port})
	assert.Error(t, err)
}
