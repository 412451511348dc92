package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/havanahub/investors/internal/auth"
	"github.com/havanahub/investors/internal/calculator"
	"github.com/havanahub/investors/internal/impexp"
	"github.com/havanahub/investors/internal/ledger"
	"github.com/havanahub/investors/internal/models"
	"github.com/havanahub/investors/internal/render"
	"github.com/havanahub/investors/pkg/api"
	"github.com/havanahub/investors/pkg/api/apiconnect"
)

var errAuthDisabled = errors.New("authentication is not enabled")

// InvestorService implements the Connect InvestorService
type InvestorService struct {
	apiconnect.UnimplementedInvestorServiceHandler
	ledger   *ledger.Ledger
	currency string

	authenticator auth.Authenticator
	tokens        *auth.JWTManager
}

// Option configures an InvestorService.
type Option func(*InvestorService)

// WithCurrency sets the currency label reported by GetDashboard.
func WithCurrency(currency string) Option {
	return func(s *InvestorService) { s.currency = currency }
}

// WithAuth enables Login with the given authenticator and token issuer.
func WithAuth(authenticator auth.Authenticator, tokens *auth.JWTManager) Option {
	return func(s *InvestorService) {
		s.authenticator = authenticator
		s.tokens = tokens
	}
}

// NewInvestorService creates a new InvestorService over the given ledger.
func NewInvestorService(l *ledger.Ledger, opts ...Option) *InvestorService {
	s := &InvestorService{ledger: l, currency: render.DefaultCurrency}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetDashboard returns the document together with its summary.
func (s *InvestorService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	doc, summary := s.ledger.Snapshot()

	return connect.NewResponse(&api.GetDashboardResponse{
		Currency:  s.currency,
		Summary:   toAPISummary(summary),
		Investors: toAPIInvestors(doc.Investors),
		Payouts:   toAPIPayouts(doc.Payouts),
	}), nil
}

// AddInvestor records a contribution, merging into an existing investor of
// the same name.
func (s *InvestorService) AddInvestor(ctx context.Context, req *connect.Request[api.AddInvestorRequest]) (*connect.Response[api.AddInvestorResponse], error) {
	slog.Info("AddInvestor request received",
		"name", req.Msg.Name,
		"amount", req.Msg.Amount,
	)

	inv, merged, err := s.ledger.AddInvestor(ctx, ledger.InvestorInput{
		Name:   req.Msg.Name,
		Amount: string(req.Msg.Amount),
		Date:   req.Msg.Date,
		Method: req.Msg.Method,
	})
	if err != nil {
		slog.Error("AddInvestor failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddInvestorResponse{
		Investor: toAPIInvestor(inv),
		Merged:   merged,
	}), nil
}

// EditInvestor replaces an investor's name and amount.
func (s *InvestorService) EditInvestor(ctx context.Context, req *connect.Request[api.EditInvestorRequest]) (*connect.Response[api.EditInvestorResponse], error) {
	slog.Info("EditInvestor request received", "investor_id", req.Msg.ID)

	inv, err := s.ledger.EditInvestor(ctx, req.Msg.ID, req.Msg.Name, string(req.Msg.Amount))
	if err != nil {
		slog.Error("EditInvestor failed", "investor_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.EditInvestorResponse{Investor: toAPIInvestor(inv)}), nil
}

// DeleteInvestor removes an investor; confirmed must be set.
func (s *InvestorService) DeleteInvestor(ctx context.Context, req *connect.Request[api.DeleteInvestorRequest]) (*connect.Response[api.DeleteInvestorResponse], error) {
	slog.Info("DeleteInvestor request received",
		"investor_id", req.Msg.ID,
		"confirmed", req.Msg.Confirmed,
	)

	inv, err := s.ledger.DeleteInvestor(ctx, req.Msg.ID, req.Msg.Confirmed)
	if err != nil {
		slog.Error("DeleteInvestor failed", "investor_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteInvestorResponse{Investor: toAPIInvestor(inv)}), nil
}

// AddPayout records a payout to an existing investor.
func (s *InvestorService) AddPayout(ctx context.Context, req *connect.Request[api.AddPayoutRequest]) (*connect.Response[api.AddPayoutResponse], error) {
	slog.Info("AddPayout request received",
		"investor_id", req.Msg.InvestorID,
		"amount", req.Msg.Amount,
	)

	p, err := s.ledger.AddPayout(ctx, ledger.PayoutInput{
		InvestorID: req.Msg.InvestorID,
		Amount:     string(req.Msg.Amount),
		Date:       req.Msg.Date,
	})
	if err != nil {
		slog.Error("AddPayout failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddPayoutResponse{Payout: toAPIPayout(p)}), nil
}

// ImportDocument replaces the document (JSON) or appends investors (CSV).
func (s *InvestorService) ImportDocument(ctx context.Context, req *connect.Request[api.ImportDocumentRequest]) (*connect.Response[api.ImportDocumentResponse], error) {
	format := impexp.DetectFormat(req.Msg.Filename)
	if req.Msg.Format != "" {
		f, err := impexp.ParseFormat(req.Msg.Format)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		format = f
	}

	slog.Info("ImportDocument request received",
		"format", format,
		"filename", req.Msg.Filename,
		"bytes", len(req.Msg.Content),
	)

	res, err := s.ledger.Import(ctx, format, []byte(req.Msg.Content))
	if err != nil {
		slog.Error("ImportDocument failed", "format", format, "error", err)
		return nil, toConnectError(err)
	}

	skipped := make([]*api.RowError, len(res.Skipped))
	for i, e := range res.Skipped {
		skipped[i] = &api.RowError{Line: e.Line, Reason: e.Reason}
	}
	return connect.NewResponse(&api.ImportDocumentResponse{
		Format:   string(res.Format),
		Imported: res.Imported,
		Payouts:  res.Payouts,
		Skipped:  skipped,
	}), nil
}

// ExportDocument returns the document as a JSON or CSV file body.
func (s *InvestorService) ExportDocument(ctx context.Context, req *connect.Request[api.ExportDocumentRequest]) (*connect.Response[api.ExportDocumentResponse], error) {
	format := impexp.FormatJSON
	if req.Msg.Format != "" {
		f, err := impexp.ParseFormat(req.Msg.Format)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		format = f
	}

	var buf bytes.Buffer
	if err := s.ledger.Export(&buf, format); err != nil {
		slog.Error("ExportDocument failed", "format", format, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &api.ExportDocumentResponse{
		Format:      string(format),
		Filename:    impexp.JSONFilename,
		ContentType: impexp.JSONContentType,
		Content:     buf.String(),
	}
	if format == impexp.FormatCSV {
		resp.Filename = impexp.CSVFilename
		resp.ContentType = impexp.CSVContentType
	}
	return connect.NewResponse(resp), nil
}

// Login exchanges the operator passphrase for a session token.
func (s *InvestorService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	if s.authenticator == nil || s.tokens == nil {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errAuthDisabled)
	}

	operator, err := s.authenticator.Authenticate(ctx, req.Msg.Passphrase)
	if err != nil {
		slog.Warn("Login failed", "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}

	token, expiresAt, err := s.tokens.Generate(operator)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Operator logged in", "operator", operator)
	return connect.NewResponse(&api.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}), nil
}

// toConnectError maps ledger and import errors to Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrValidation), errors.Is(err, impexp.ErrParse):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrConfirmationRequired):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func toAPIInvestor(inv models.Investor) *api.Investor {
	return &api.Investor{
		ID:      inv.ID,
		Name:    inv.Name,
		Amount:  inv.Amount.Float64(),
		Date:    inv.Date,
		Method:  inv.Method,
		Returns: inv.Returns.Float64(),
	}
}

func toAPIInvestors(investors []models.Investor) []*api.Investor {
	out := make([]*api.Investor, len(investors))
	for i, inv := range investors {
		out[i] = toAPIInvestor(inv)
	}
	return out
}

func toAPIPayout(p models.Payout) *api.Payout {
	return &api.Payout{
		ID:         p.ID,
		InvestorID: p.InvestorID,
		Amount:     p.Amount.Float64(),
		Date:       p.Date,
	}
}

func toAPIPayouts(payouts []models.Payout) []*api.Payout {
	out := make([]*api.Payout, len(payouts))
	for i, p := range payouts {
		out[i] = toAPIPayout(p)
	}
	return out
}

func toAPISummary(s calculator.Summary) *api.Summary {
	stats := make([]*api.InvestorStats, len(s.Investors))
	for i, st := range s.Investors {
		stats[i] = &api.InvestorStats{
			InvestorID: st.InvestorID,
			Name:       st.Name,
			Amount:     st.Amount,
			Returns:    st.Returns,
			Share:      st.Share,
			ROI:        st.ROI,
			PaidOut:    st.PaidOut,
			Balance:    st.Balance,
		}
	}
	return &api.Summary{
		TotalRaised:   s.TotalRaised,
		TotalPayouts:  s.TotalPayouts,
		InvestorCount: s.InvestorCount,
		PayoutCount:   s.PayoutCount,
		Investors:     stats,
	}
}
