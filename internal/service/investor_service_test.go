package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/havanahub/investors/internal/auth"
	"github.com/havanahub/investors/internal/ledger"
	"github.com/havanahub/investors/internal/middleware"
	"github.com/havanahub/investors/internal/storage"
	"github.com/havanahub/investors/internal/storage/sqlite"
	"github.com/havanahub/investors/pkg/api"
	"github.com/havanahub/investors/pkg/api/apiconnect"
)

// setupTestServer creates a test server backed by a temporary SQLite file.
func setupTestServer(t *testing.T, opts ...Option) (apiconnect.InvestorServiceClient, func()) {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	kv, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}
	store := storage.NewDocumentStore(kv, "")

	n := 0
	l, err := ledger.Open(context.Background(), store,
		ledger.WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
		ledger.WithClock(func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		store.Close()
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to open ledger: %v", err)
	}

	path, handler := apiconnect.NewInvestorServiceHandler(NewInvestorService(l, opts...))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	client := apiconnect.NewInvestorServiceClient(http.DefaultClient, server.URL)

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return client, cleanup
}

func addInvestor(t *testing.T, client apiconnect.InvestorServiceClient, name, amount string) *api.AddInvestorResponse {
	t.Helper()

	resp, err := client.AddInvestor(context.Background(), connect.NewRequest(&api.AddInvestorRequest{
		Name:   name,
		Amount: api.Number(amount),
	}))
	if err != nil {
		t.Fatalf("AddInvestor failed: %v", err)
	}
	return resp.Msg
}

func TestKofiScenario(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	resp, err := client.AddInvestor(ctx, connect.NewRequest(&api.AddInvestorRequest{
		Name:   "Kofi",
		Amount: "500",
		Date:   "2024-02-01",
		Method: "mobile money",
	}))
	if err != nil {
		t.Fatalf("AddInvestor failed: %v", err)
	}
	if resp.Msg.Merged {
		t.Error("expected a new investor")
	}
	kofiID := resp.Msg.Investor.ID

	dash, err := client.GetDashboard(ctx, connect.NewRequest(&api.GetDashboardRequest{}))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if dash.Msg.Summary.TotalRaised != 500 {
		t.Errorf("total raised: expected 500, got %v", dash.Msg.Summary.TotalRaised)
	}
	if dash.Msg.Summary.InvestorCount != 1 {
		t.Errorf("investor count: expected 1, got %d", dash.Msg.Summary.InvestorCount)
	}
	if share := dash.Msg.Summary.Investors[0].Share; share != 100 {
		t.Errorf("share: expected 100, got %v", share)
	}
	if dash.Msg.Currency != "GHS" {
		t.Errorf("currency: expected GHS, got %q", dash.Msg.Currency)
	}

	payout, err := client.AddPayout(ctx, connect.NewRequest(&api.AddPayoutRequest{
		InvestorID: kofiID,
		Amount:     "100",
	}))
	if err != nil {
		t.Fatalf("AddPayout failed: %v", err)
	}
	if payout.Msg.Payout.Date != "2024-05-01" {
		t.Errorf("payout date: expected 2024-05-01, got %q", payout.Msg.Payout.Date)
	}

	dash, err = client.GetDashboard(ctx, connect.NewRequest(&api.GetDashboardRequest{}))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if dash.Msg.Summary.TotalPayouts != 100 {
		t.Errorf("total payouts: expected 100, got %v", dash.Msg.Summary.TotalPayouts)
	}
	if balance := dash.Msg.Summary.Investors[0].Balance; balance != 400 {
		t.Errorf("balance: expected 400, got %v", balance)
	}
}

func TestAddInvestor_Merge(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	first := addInvestor(t, client, "Ama", "1000")
	second := addInvestor(t, client, "AMA", "250.5")

	if !second.Merged {
		t.Error("expected merge on case-insensitive name match")
	}
	if second.Investor.ID != first.Investor.ID {
		t.Errorf("id: expected %s, got %s", first.Investor.ID, second.Investor.ID)
	}
	if second.Investor.Amount != 1250.5 {
		t.Errorf("amount: expected 1250.5, got %v", second.Investor.Amount)
	}
}

func TestErrorCodes(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	ama := addInvestor(t, client, "Ama", "1000")

	tests := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{
			name: "add without name",
			call: func() error {
				_, err := client.AddInvestor(ctx, connect.NewRequest(&api.AddInvestorRequest{Amount: "10"}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "add with zero amount",
			call: func() error {
				_, err := client.AddInvestor(ctx, connect.NewRequest(&api.AddInvestorRequest{Name: "Esi", Amount: "0"}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "edit unknown investor",
			call: func() error {
				_, err := client.EditInvestor(ctx, connect.NewRequest(&api.EditInvestorRequest{ID: "missing", Name: "X", Amount: "1"}))
				return err
			},
			want: connect.CodeNotFound,
		},
		{
			name: "edit with non-numeric amount",
			call: func() error {
				_, err := client.EditInvestor(ctx, connect.NewRequest(&api.EditInvestorRequest{ID: ama.Investor.ID, Name: "Ama", Amount: "lots"}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "delete without confirmation",
			call: func() error {
				_, err := client.DeleteInvestor(ctx, connect.NewRequest(&api.DeleteInvestorRequest{ID: ama.Investor.ID}))
				return err
			},
			want: connect.CodeFailedPrecondition,
		},
		{
			name: "payout to unknown investor",
			call: func() error {
				_, err := client.AddPayout(ctx, connect.NewRequest(&api.AddPayoutRequest{InvestorID: "missing", Amount: "5"}))
				return err
			},
			want: connect.CodeNotFound,
		},
		{
			name: "malformed json import",
			call: func() error {
				_, err := client.ImportDocument(ctx, connect.NewRequest(&api.ImportDocumentRequest{Filename: "backup.json", Content: "{"}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "unknown export format",
			call: func() error {
				_, err := client.ExportDocument(ctx, connect.NewRequest(&api.ExportDocumentRequest{Format: "xml"}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "login with auth disabled",
			call: func() error {
				_, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{Passphrase: "x"}))
				return err
			},
			want: connect.CodeFailedPrecondition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected error")
			}
			if code := connect.CodeOf(err); code != tt.want {
				t.Errorf("code: expected %v, got %v (%v)", tt.want, code, err)
			}
		})
	}
}

func TestEditAndDeleteInvestor(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	ama := addInvestor(t, client, "Ama", "1000")
	_, err := client.AddPayout(ctx, connect.NewRequest(&api.AddPayoutRequest{InvestorID: ama.Investor.ID, Amount: "40", Date: "2024-01-09"}))
	if err != nil {
		t.Fatalf("AddPayout failed: %v", err)
	}

	edited, err := client.EditInvestor(ctx, connect.NewRequest(&api.EditInvestorRequest{
		ID:     ama.Investor.ID,
		Name:   "Ama Serwaa",
		Amount: "1200",
	}))
	if err != nil {
		t.Fatalf("EditInvestor failed: %v", err)
	}
	if edited.Msg.Investor.Name != "Ama Serwaa" || edited.Msg.Investor.Amount != 1200 {
		t.Errorf("unexpected edit result: %+v", edited.Msg.Investor)
	}

	_, err = client.DeleteInvestor(ctx, connect.NewRequest(&api.DeleteInvestorRequest{ID: ama.Investor.ID, Confirmed: true}))
	if err != nil {
		t.Fatalf("DeleteInvestor failed: %v", err)
	}

	dash, err := client.GetDashboard(ctx, connect.NewRequest(&api.GetDashboardRequest{}))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if len(dash.Msg.Investors) != 0 {
		t.Errorf("investors: expected 0, got %d", len(dash.Msg.Investors))
	}
	if len(dash.Msg.Payouts) != 1 {
		t.Fatalf("payouts: expected the orphaned payout to remain, got %d", len(dash.Msg.Payouts))
	}
	if dash.Msg.Payouts[0].InvestorID != ama.Investor.ID {
		t.Errorf("payout investor: expected %s, got %s", ama.Investor.ID, dash.Msg.Payouts[0].InvestorID)
	}
}

func TestImportExport(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	imported, err := client.ImportDocument(ctx, connect.NewRequest(&api.ImportDocumentRequest{
		Filename: "investors.csv",
		Content:  "\"Name\",\"Amount\",\"Date\",\"Method\",\"Returns\"\n\"Ama\",\"1000\",\"2024-01-01\",\"cash\",\"50\"\n\"Bad\",\"x\",\"\",\"\",\"0\"",
	}))
	if err != nil {
		t.Fatalf("ImportDocument failed: %v", err)
	}
	if imported.Msg.Format != "csv" || imported.Msg.Imported != 1 || len(imported.Msg.Skipped) != 1 {
		t.Errorf("unexpected import result: %+v", imported.Msg)
	}

	csvResp, err := client.ExportDocument(ctx, connect.NewRequest(&api.ExportDocumentRequest{Format: "csv"}))
	if err != nil {
		t.Fatalf("ExportDocument failed: %v", err)
	}
	want := "\"Name\",\"Amount\",\"Date\",\"Method\",\"Returns\"\n\"Ama\",\"1000\",\"2024-01-01\",\"cash\",\"50\""
	if csvResp.Msg.Content != want {
		t.Errorf("csv export:\nexpected %q\ngot      %q", want, csvResp.Msg.Content)
	}
	if csvResp.Msg.Filename != "investors.csv" {
		t.Errorf("filename: expected investors.csv, got %s", csvResp.Msg.Filename)
	}

	jsonResp, err := client.ExportDocument(ctx, connect.NewRequest(&api.ExportDocumentRequest{}))
	if err != nil {
		t.Fatalf("ExportDocument failed: %v", err)
	}
	if jsonResp.Msg.Filename != "havana_investors_export.json" {
		t.Errorf("filename: expected havana_investors_export.json, got %s", jsonResp.Msg.Filename)
	}

	// Replace with an empty document, then restore from the export
	if _, err := client.ImportDocument(ctx, connect.NewRequest(&api.ImportDocumentRequest{
		Format:  "json",
		Content: `{"investors":[],"payouts":[]}`,
	})); err != nil {
		t.Fatalf("ImportDocument failed: %v", err)
	}
	restored, err := client.ImportDocument(ctx, connect.NewRequest(&api.ImportDocumentRequest{
		Filename: jsonResp.Msg.Filename,
		Content:  jsonResp.Msg.Content,
	}))
	if err != nil {
		t.Fatalf("ImportDocument failed: %v", err)
	}
	if restored.Msg.Format != "json" || restored.Msg.Imported != 1 {
		t.Errorf("unexpected restore result: %+v", restored.Msg)
	}
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassphrase("open sesame")
	if err != nil {
		t.Fatalf("HashPassphrase failed: %v", err)
	}
	tokens := auth.NewJWTManager("secret", time.Hour)

	client, cleanup := setupTestServer(t, WithAuth(auth.NewPassphraseAuthenticator(hash), tokens))
	defer cleanup()
	ctx := context.Background()

	_, err = client.Login(ctx, connect.NewRequest(&api.LoginRequest{Passphrase: "wrong passphrase"}))
	if code := connect.CodeOf(err); code != connect.CodeUnauthenticated {
		t.Errorf("code: expected unauthenticated, got %v", code)
	}

	resp, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{Passphrase: "open sesame"}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	claims, err := tokens.Validate(resp.Msg.Token)
	if err != nil {
		t.Fatalf("token should validate: %v", err)
	}
	if claims.Operator != auth.Operator {
		t.Errorf("operator: expected %s, got %s", auth.Operator, claims.Operator)
	}
	if resp.Msg.ExpiresAt <= time.Now().Unix() {
		t.Error("expected expiry in the future")
	}
}

// Ensure the interceptor chain used by the server accepts issued tokens.
func TestAuthenticatedMutation(t *testing.T) {
	ctx := context.Background()
	store := storage.NewDocumentStore(storage.NewMemoryKV(), "")
	l, err := ledger.Open(ctx, store)
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}

	hash, err := auth.HashPassphrase("open sesame")
	if err != nil {
		t.Fatalf("HashPassphrase failed: %v", err)
	}
	tokens := auth.NewJWTManager("secret", time.Hour)

	path, handler := apiconnect.NewInvestorServiceHandler(
		NewInvestorService(l, WithAuth(auth.NewPassphraseAuthenticator(hash), tokens)),
		connect.WithInterceptors(middleware.RequireAuth(tokens, apiconnect.InvestorServiceLoginProcedure)),
	)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()
	client := apiconnect.NewInvestorServiceClient(http.DefaultClient, server.URL)

	_, err = client.AddInvestor(ctx, connect.NewRequest(&api.AddInvestorRequest{Name: "Ama", Amount: "1"}))
	if code := connect.CodeOf(err); code != connect.CodeUnauthenticated {
		t.Fatalf("code: expected unauthenticated, got %v", code)
	}

	login, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{Passphrase: "open sesame"}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	req := connect.NewRequest(&api.AddInvestorRequest{Name: "Ama", Amount: "1"})
	req.Header().Set("Authorization", "Bearer "+login.Msg.Token)
	if _, err := client.AddInvestor(ctx, req); err != nil {
		t.Fatalf("AddInvestor failed: %v", err)
	}
	if got := len(l.Document().Investors); got != 1 {
		t.Errorf("investors: expected 1, got %d", got)
	}
}
