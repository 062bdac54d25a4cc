package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"socialhub/internal/audit"
	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
)

const ServiceName = "socialhub.v1.ModerationService"

// ModerationServer is the gRPC surface of the moderation workflow. Requests and
// responses are free-form structs so tooling can call it without generated stubs.
type ModerationServer interface {
	ReportQueue(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	ListReports(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetReport(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	ReviewReport(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	ResolveReport(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	RejectReport(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	DisableUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	RemovePost(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	RemoveComment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	ListLogs(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ModerationServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ReportQueue", ModerationServer.ReportQueue),
		unary("ListReports", ModerationServer.ListReports),
		unary("GetReport", ModerationServer.GetReport),
		unary("ReviewReport", ModerationServer.ReviewReport),
		unary("ResolveReport", ModerationServer.ResolveReport),
		unary("RejectReport", ModerationServer.RejectReport),
		unary("DisableUser", ModerationServer.DisableUser),
		unary("RemovePost", ModerationServer.RemovePost),
		unary("RemoveComment", ModerationServer.RemoveComment),
		unary("ListLogs", ModerationServer.ListLogs),
	},
	Streams: []grpc.StreamDesc{},
}

type structCall func(ModerationServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call structCall) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ModerationServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(ModerationServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

type GRPCServer struct {
	svc ModerationService
}

func NewGRPCServer(svc ModerationService) *GRPCServer {
	return &GRPCServer{svc: svc}
}

func (s *GRPCServer) Register(r grpc.ServiceRegistrar) {
	r.RegisterService(&ServiceDesc, s)
}

func (s *GRPCServer) ReportQueue(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	mod, err := moderator(ctx)
	if err != nil {
		return nil, err
	}
	reports, err := s.svc.ReportQueue(ctx, mod.ModLevel)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []dbmysql.Report{}
	}
	return toStruct(map[string]interface{}{"reports": reports})
}

func (s *GRPCServer) ListReports(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	mod, err := moderator(ctx)
	if err != nil {
		return nil, err
	}
	page, perPage, err := pageFields(in)
	if err != nil {
		return nil, err
	}
	res, err := s.svc.Reports(ctx, mod.ModLevel, page, perPage)
	if err != nil {
		return nil, err
	}
	return toStruct(res)
}

func (s *GRPCServer) GetReport(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	mod, err := moderator(ctx)
	if err != nil {
		return nil, err
	}
	reportID, err := reportIDField(in)
	if err != nil {
		return nil, err
	}
	report, err := s.svc.Report(ctx, mod.ModLevel, reportID)
	if err != nil {
		return nil, err
	}
	return toStruct(report)
}

func (s *GRPCServer) ReviewReport(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.transition(ctx, in, s.svc.ReviewReport)
}

func (s *GRPCServer) ResolveReport(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.transition(ctx, in, s.svc.ResolveReport)
}

func (s *GRPCServer) RejectReport(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.transition(ctx, in, s.svc.RejectReport)
}

func (s *GRPCServer) DisableUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	mod, err := moderator(ctx)
	if err != nil {
		return nil, err
	}
	reportID, err := reportIDField(in)
	if err != nil {
		return nil, err
	}
	days, err := intField(in, "days")
	if err != nil {
		return nil, err
	}
	until, err := s.svc.DisableUser(ctx, mod, reportID, days)
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(map[string]interface{}{
		"success":        true,
		"disabled_until": until.UTC().Format(time.RFC3339),
	})
}

func (s *GRPCServer) RemovePost(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.removal(ctx, in, s.svc.RemoveReportedPost)
}

func (s *GRPCServer) RemoveComment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.removal(ctx, in, s.svc.RemoveReportedComment)
}

func (s *GRPCServer) ListLogs(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if _, err := moderator(ctx); err != nil {
		return nil, err
	}
	filter := audit.LogFilter{
		Action: common.ActionType(in.GetFields()["action"].GetStringValue()),
	}
	userID, err := intField(in, "user_id")
	if err != nil {
		return nil, err
	}
	if userID > 0 {
		filter.UserID = uint64(userID)
	}
	page, perPage, err := pageFields(in)
	if err != nil {
		return nil, err
	}
	res, err := s.svc.ApplicationLog(ctx, filter, page, perPage)
	if err != nil {
		return nil, err
	}
	return toStruct(res)
}

func (s *GRPCServer) transition(ctx context.Context, in *structpb.Struct,
	fn func(context.Context, common.Principal, uint64) (*dbmysql.Report, error)) (*structpb.Struct, error) {
	mod, err := moderator(ctx)
	if err != nil {
		return nil, err
	}
	reportID, err := reportIDField(in)
	if err != nil {
		return nil, err
	}
	report, err := fn(ctx, mod, reportID)
	if err != nil {
		return nil, err
	}
	return toStruct(report)
}

func (s *GRPCServer) removal(ctx context.Context, in *structpb.Struct,
	fn func(context.Context, common.Principal, uint64) error) (*structpb.Struct, error) {
	mod, err := moderator(ctx)
	if err != nil {
		return nil, err
	}
	reportID, err := reportIDField(in)
	if err != nil {
		return nil, err
	}
	if err := fn(ctx, mod, reportID); err != nil {
		return nil, err
	}
	return structpb.NewStruct(map[string]interface{}{"success": true})
}

func moderator(ctx context.Context) (common.Principal, error) {
	p, ok := common.PrincipalFromContext(ctx)
	if !ok || !p.IsModerator() {
		return common.Principal{}, status.Error(codes.Unauthenticated, "moderator token required")
	}
	return p, nil
}

// intField reads an optional whole-number field. Missing fields are 0.
func intField(in *structpb.Struct, name string) (int, error) {
	v := in.GetFields()[name].GetNumberValue()
	if math.IsNaN(v) || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s must be an integer", common.ErrInvalidInput, name)
	}
	return int(v), nil
}

func pageFields(in *structpb.Struct) (int, int, error) {
	page, err := intField(in, "page")
	if err != nil {
		return 0, 0, err
	}
	perPage, err := intField(in, "per_page")
	if err != nil {
		return 0, 0, err
	}
	return page, perPage, nil
}

func reportIDField(in *structpb.Struct) (uint64, error) {
	id := in.GetFields()["report_id"].GetNumberValue()
	if id < 1 || id != float64(uint64(id)) {
		return 0, fmt.Errorf("%w: report_id must be a positive integer", common.ErrInvalidInput)
	}
	return uint64(id), nil
}

// toStruct round-trips v through its JSON form so responses carry the same
// field names as the HTTP API.
func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return structpb.NewStruct(fields)
}
