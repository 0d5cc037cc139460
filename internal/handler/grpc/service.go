package grpc

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-fin-keeper/models"
)

const (
	syncServiceName = "finkeeper.sync.v1.SyncService"

	PushMethod  = "/" + syncServiceName + "/Push"
	PullMethod  = "/" + syncServiceName + "/Pull"
	StatsMethod = "/" + syncServiceName + "/Stats"
)

// PushMessage is a push request as it came off the wire. The rows are also
// kept in the exact encoding the device sent, because that is what the
// integrity hash covers.
type PushMessage struct {
	models.PushRequest
	rawRows json.RawMessage
}

func (m *PushMessage) UnmarshalJSON(data []byte) error {
	var raw struct {
		Rows json.RawMessage `json:"rows"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode push rows: %w", err)
	}
	if err := json.Unmarshal(data, &m.PushRequest); err != nil {
		return err
	}
	m.rawRows = raw.Rows
	return nil
}

// SyncServer is the gRPC face of the sync protocol.
type SyncServer interface {
	Push(ctx context.Context, req *PushMessage) (*models.PushResponse, error)
	Pull(ctx context.Context, req *models.PullRequest) (*models.PullResponse, error)
	Stats(ctx context.Context, req *models.StatsRequest) (*models.StatsResponse, error)
}

var syncServiceDesc = grpc.ServiceDesc{
	ServiceName: syncServiceName,
	HandlerType: (*SyncServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Push", Handler: unaryHandler(PushMethod, SyncServer.Push)},
		{MethodName: "Pull", Handler: unaryHandler(PullMethod, SyncServer.Pull)},
		{MethodName: "Stats", Handler: unaryHandler(StatsMethod, SyncServer.Stats)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "finkeeper/sync/v1/sync.json",
}

// unaryHandler does what protoc-gen-go-grpc generates per method: decode the
// request, then call the method through the interceptor chain.
func unaryHandler[Req, Resp any](fullMethod string, call func(SyncServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SyncServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SyncServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// RegisterSyncServer attaches srv to s.
func RegisterSyncServer(s grpc.ServiceRegistrar, srv SyncServer) {
	s.RegisterService(&syncServiceDesc, srv)
}
