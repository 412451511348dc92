// Package apiconnect wires the havana.v1.InvestorService messages to Connect
// handlers and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/havanahub/investors/pkg/api"
)

// InvestorServiceName is the fully-qualified name of the InvestorService service.
const InvestorServiceName = "havana.v1.InvestorService"

// These constants are the fully-qualified names of the RPCs defined in this
// package. They're exposed at runtime as Spec.Procedure and as the final two
// segments of the HTTP route.
const (
	InvestorServiceGetDashboardProcedure   = "/havana.v1.InvestorService/GetDashboard"
	InvestorServiceAddInvestorProcedure    = "/havana.v1.InvestorService/AddInvestor"
	InvestorServiceEditInvestorProcedure   = "/havana.v1.InvestorService/EditInvestor"
	InvestorServiceDeleteInvestorProcedure = "/havana.v1.InvestorService/DeleteInvestor"
	InvestorServiceAddPayoutProcedure      = "/havana.v1.InvestorService/AddPayout"
	InvestorServiceImportDocumentProcedure = "/havana.v1.InvestorService/ImportDocument"
	InvestorServiceExportDocumentProcedure = "/havana.v1.InvestorService/ExportDocument"
	InvestorServiceLoginProcedure          = "/havana.v1.InvestorService/Login"
)

// InvestorServiceClient is a client for the havana.v1.InvestorService service.
type InvestorServiceClient interface {
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
	AddInvestor(context.Context, *connect.Request[api.AddInvestorRequest]) (*connect.Response[api.AddInvestorResponse], error)
	EditInvestor(context.Context, *connect.Request[api.EditInvestorRequest]) (*connect.Response[api.EditInvestorResponse], error)
	DeleteInvestor(context.Context, *connect.Request[api.DeleteInvestorRequest]) (*connect.Response[api.DeleteInvestorResponse], error)
	AddPayout(context.Context, *connect.Request[api.AddPayoutRequest]) (*connect.Response[api.AddPayoutResponse], error)
	ImportDocument(context.Context, *connect.Request[api.ImportDocumentRequest]) (*connect.Response[api.ImportDocumentResponse], error)
	ExportDocument(context.Context, *connect.Request[api.ExportDocumentRequest]) (*connect.Response[api.ExportDocumentResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
}

// NewInvestorServiceClient constructs a client for the
// havana.v1.InvestorService service. The JSON codec is always used.
//
// The URL supplied here should be the base URL for the Connect server (for
// example, http://api.acme.com or https://acme.com/grpc).
func NewInvestorServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) InvestorServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &investorServiceClient{
		getDashboard:   connect.NewClient[api.GetDashboardRequest, api.GetDashboardResponse](httpClient, baseURL+InvestorServiceGetDashboardProcedure, opts...),
		addInvestor:    connect.NewClient[api.AddInvestorRequest, api.AddInvestorResponse](httpClient, baseURL+InvestorServiceAddInvestorProcedure, opts...),
		editInvestor:   connect.NewClient[api.EditInvestorRequest, api.EditInvestorResponse](httpClient, baseURL+InvestorServiceEditInvestorProcedure, opts...),
		deleteInvestor: connect.NewClient[api.DeleteInvestorRequest, api.DeleteInvestorResponse](httpClient, baseURL+InvestorServiceDeleteInvestorProcedure, opts...),
		addPayout:      connect.NewClient[api.AddPayoutRequest, api.AddPayoutResponse](httpClient, baseURL+InvestorServiceAddPayoutProcedure, opts...),
		importDocument: connect.NewClient[api.ImportDocumentRequest, api.ImportDocumentResponse](httpClient, baseURL+InvestorServiceImportDocumentProcedure, opts...),
		exportDocument: connect.NewClient[api.ExportDocumentRequest, api.ExportDocumentResponse](httpClient, baseURL+InvestorServiceExportDocumentProcedure, opts...),
		login:          connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+InvestorServiceLoginProcedure, opts...),
	}
}

// investorServiceClient implements InvestorServiceClient.
type investorServiceClient struct {
	getDashboard   *connect.Client[api.GetDashboardRequest, api.GetDashboardResponse]
	addInvestor    *connect.Client[api.AddInvestorRequest, api.AddInvestorResponse]
	editInvestor   *connect.Client[api.EditInvestorRequest, api.EditInvestorResponse]
	deleteInvestor *connect.Client[api.DeleteInvestorRequest, api.DeleteInvestorResponse]
	addPayout      *connect.Client[api.AddPayoutRequest, api.AddPayoutResponse]
	importDocument *connect.Client[api.ImportDocumentRequest, api.ImportDocumentResponse]
	exportDocument *connect.Client[api.ExportDocumentRequest, api.ExportDocumentResponse]
	login          *connect.Client[api.LoginRequest, api.LoginResponse]
}

func (c *investorServiceClient) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

func (c *investorServiceClient) AddInvestor(ctx context.Context, req *connect.Request[api.AddInvestorRequest]) (*connect.Response[api.AddInvestorResponse], error) {
	return c.addInvestor.CallUnary(ctx, req)
}

func (c *investorServiceClient) EditInvestor(ctx context.Context, req *connect.Request[api.EditInvestorRequest]) (*connect.Response[api.EditInvestorResponse], error) {
	return c.editInvestor.CallUnary(ctx, req)
}

func (c *investorServiceClient) DeleteInvestor(ctx context.Context, req *connect.Request[api.DeleteInvestorRequest]) (*connect.Response[api.DeleteInvestorResponse], error) {
	return c.deleteInvestor.CallUnary(ctx, req)
}

func (c *investorServiceClient) AddPayout(ctx context.Context, req *connect.Request[api.AddPayoutRequest]) (*connect.Response[api.AddPayoutResponse], error) {
	return c.addPayout.CallUnary(ctx, req)
}

func (c *investorServiceClient) ImportDocument(ctx context.Context, req *connect.Request[api.ImportDocumentRequest]) (*connect.Response[api.ImportDocumentResponse], error) {
	return c.importDocument.CallUnary(ctx, req)
}

func (c *investorServiceClient) ExportDocument(ctx context.Context, req *connect.Request[api.ExportDocumentRequest]) (*connect.Response[api.ExportDocumentResponse], error) {
	return c.exportDocument.CallUnary(ctx, req)
}

func (c *investorServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// InvestorServiceHandler is an implementation of the havana.v1.InvestorService service.
type InvestorServiceHandler interface {
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
	AddInvestor(context.Context, *connect.Request[api.AddInvestorRequest]) (*connect.Response[api.AddInvestorResponse], error)
	EditInvestor(context.Context, *connect.Request[api.EditInvestorRequest]) (*connect.Response[api.EditInvestorResponse], error)
	DeleteInvestor(context.Context, *connect.Request[api.DeleteInvestorRequest]) (*connect.Response[api.DeleteInvestorResponse], error)
	AddPayout(context.Context, *connect.Request[api.AddPayoutRequest]) (*connect.Response[api.AddPayoutResponse], error)
	ImportDocument(context.Context, *connect.Request[api.ImportDocumentRequest]) (*connect.Response[api.ImportDocumentResponse], error)
	ExportDocument(context.Context, *connect.Request[api.ExportDocumentRequest]) (*connect.Response[api.ExportDocumentResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
}

// NewInvestorServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself. The JSON codec replaces Connect's default protobuf JSON.
func NewInvestorServiceHandler(svc InvestorServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)

	getDashboardHandler := connect.NewUnaryHandler(InvestorServiceGetDashboardProcedure, svc.GetDashboard, opts...)
	addInvestorHandler := connect.NewUnaryHandler(InvestorServiceAddInvestorProcedure, svc.AddInvestor, opts...)
	editInvestorHandler := connect.NewUnaryHandler(InvestorServiceEditInvestorProcedure, svc.EditInvestor, opts...)
	deleteInvestorHandler := connect.NewUnaryHandler(InvestorServiceDeleteInvestorProcedure, svc.DeleteInvestor, opts...)
	addPayoutHandler := connect.NewUnaryHandler(InvestorServiceAddPayoutProcedure, svc.AddPayout, opts...)
	importDocumentHandler := connect.NewUnaryHandler(InvestorServiceImportDocumentProcedure, svc.ImportDocument, opts...)
	exportDocumentHandler := connect.NewUnaryHandler(InvestorServiceExportDocumentProcedure, svc.ExportDocument, opts...)
	loginHandler := connect.NewUnaryHandler(InvestorServiceLoginProcedure, svc.Login, opts...)

	return "/havana.v1.InvestorService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case InvestorServiceGetDashboardProcedure:
			getDashboardHandler.ServeHTTP(w, r)
		case InvestorServiceAddInvestorProcedure:
			addInvestorHandler.ServeHTTP(w, r)
		case InvestorServiceEditInvestorProcedure:
			editInvestorHandler.ServeHTTP(w, r)
		case InvestorServiceDeleteInvestorProcedure:
			deleteInvestorHandler.ServeHTTP(w, r)
		case InvestorServiceAddPayoutProcedure:
			addPayoutHandler.ServeHTTP(w, r)
		case InvestorServiceImportDocumentProcedure:
			importDocumentHandler.ServeHTTP(w, r)
		case InvestorServiceExportDocumentProcedure:
			exportDocumentHandler.ServeHTTP(w, r)
		case InvestorServiceLoginProcedure:
			loginHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedInvestorServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedInvestorServiceHandler struct{}

func (UnimplementedInvestorServiceHandler) GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("havana.v1.InvestorService.GetDashboard is not implemented"))
}

func (UnimplementedInvestorServiceHandler) AddInvestor(context.Context, *connect.Request[api.AddInvestorRequest]) (*connect.Response[api.AddInvestorResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("havana.v1.InvestorService.AddInvestor is not implemented"))
}

func (UnimplementedInvestorServiceHandler) EditInvestor(context.Context, *connect.Request[api.EditInvestorRequest]) (*connect.Response[api.EditInvestorResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("havana.v1.InvestorService.EditInvestor is not implemented"))
}

func (UnimplementedInvestorServiceHandler) DeleteInvestor(context.Context, *connect.Request[api.DeleteInvestorRequest]) (*connect.Response[api.DeleteInvestorResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("havana.v1.InvestorService.DeleteInvestor is not implemented"))
}

func (UnimplementedInvestorServiceHandler) AddPayout(context.Context, *connect.Request[api.AddPayoutRequest]) (*connect.Response[api.AddPayoutResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("havana.v1.InvestorService.AddPayout is not implemented"))
}

func (UnimplementedInvestorServiceHandler) ImportDocument(context.Context, *connect.Request[api.ImportDocumentRequest]) (*connect.Response[api.ImportDocumentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("havana.v1.InvestorService.ImportDocument is not implemented"))
}

func (UnimplementedInvestorServiceHandler) ExportDocument(context.Context, *connect.Request[api.ExportDocumentRequest]) (*connect.Response[api.ExportDocumentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("havana.v1.InvestorService.ExportDocument is not implemented"))
}

func (UnimplementedInvestorServiceHandler) Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("havana.v1.InvestorService.Login is not implemented"))
}
