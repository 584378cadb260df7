package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_PlainMessages(t *testing.T) {
	var c Codec
	show := true
	in := &NextRequest{Selection: Selection{Filter: "all", ShowNSFW: &show}}

	b, err := c.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"filter":"all","show_nsfw":true}`, string(b))

	var out NextRequest
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, in.Filter, out.Filter)
	require.NotNil(t, out.ShowNSFW)
	assert.True(t, *out.ShowNSFW)
}

func TestCodec_EmptyBody(t *testing.T) {
	var out Empty
	assert.NoError(t, Codec{}.Unmarshal(nil, &out))
}

func TestCodec_ProtoMessages(t *testing.T) {
	var c Codec
	b, err := c.Marshal(&healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"SERVING"`)

	var out healthpb.HealthCheckResponse
	require.NoError(t, c.Unmarshal([]byte(`{"status":"NOT_SERVING","extra":1}`), &out))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, out.Status)
}

func TestCodec_InvalidJSON(t *testing.T) {
	var out Session
	assert.Error(t, Codec{}.Unmarshal([]byte("{"), &out))
}
