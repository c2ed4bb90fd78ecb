package grpc

// proto.go hand-writes the service descriptor for
// calculator.v1.CalculatorService. Messages are the application DTOs,
// carried by the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/calculator/internal/application/dto"
)

const serviceName = "calculator.v1.CalculatorService"

// Full method names.
const (
	CalculateOffersMethod = "/" + serviceName + "/CalculateOffers"
	CalculateCreditMethod = "/" + serviceName + "/CalculateCredit"
)

type (
	CalculateOffersRequest = dto.LoanOfferRequest
	CalculateCreditRequest = dto.ScoringDataRequest
)

// CalculateOffersResponse wraps the offer list; a top-level JSON array is
// not a message.
type CalculateOffersResponse struct {
	Offers []dto.LoanOfferResponse `json:"offers"`
}

type CalculateCreditResponse struct {
	Credit dto.CreditResponse `json:"credit"`
}

// CalculatorServiceServer is the server API for CalculatorService.
type CalculatorServiceServer interface {
	CalculateOffers(context.Context, *CalculateOffersRequest) (*CalculateOffersResponse, error)
	CalculateCredit(context.Context, *CalculateCreditRequest) (*CalculateCreditResponse, error)
	mustEmbedUnimplementedCalculatorServiceServer()
}

// UnimplementedCalculatorServiceServer provides forward-compatible default implementations.
type UnimplementedCalculatorServiceServer struct{}

func (UnimplementedCalculatorServiceServer) CalculateOffers(context.Context, *CalculateOffersRequest) (*CalculateOffersResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculateOffers not implemented")
}
func (UnimplementedCalculatorServiceServer) CalculateCredit(context.Context, *CalculateCreditRequest) (*CalculateCreditResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculateCredit not implemented")
}
func (UnimplementedCalculatorServiceServer) mustEmbedUnimplementedCalculatorServiceServer() {}

// RegisterCalculatorServiceServer registers the CalculatorServiceServer with the gRPC server.
func RegisterCalculatorServiceServer(s grpclib.ServiceRegistrar, srv CalculatorServiceServer) {
	s.RegisterService(&calculatorServiceDesc, srv)
}

var calculatorServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CalculatorServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CalculateOffers", Handler: calculateOffersHandler},
		{MethodName: "CalculateCredit", Handler: calculateCreditHandler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "calculator/v1/calculator.proto",
}

func calculateOffersHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(CalculateOffersRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServiceServer).CalculateOffers(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalculateOffersMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalculatorServiceServer).CalculateOffers(ctx, req.(*CalculateOffersRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func calculateCreditHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(CalculateCreditRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServiceServer).CalculateCredit(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalculateCreditMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalculatorServiceServer).CalculateCredit(ctx, req.(*CalculateCreditRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// CalculatorServiceClient is the client API for CalculatorService.
type CalculatorServiceClient struct {
	cc grpclib.ClientConnInterface
}

func NewCalculatorServiceClient(cc grpclib.ClientConnInterface) *CalculatorServiceClient {
	return &CalculatorServiceClient{cc: cc}
}

func (c *CalculatorServiceClient) CalculateOffers(ctx context.Context, in *CalculateOffersRequest, opts ...grpclib.CallOption) (*CalculateOffersResponse, error) {
	out := new(CalculateOffersResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, CalculateOffersMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CalculatorServiceClient) CalculateCredit(ctx context.Context, in *CalculateCreditRequest, opts ...grpclib.CallOption) (*CalculateCreditResponse, error) {
	out := new(CalculateCreditResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, CalculateCreditMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
