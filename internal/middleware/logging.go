package middleware

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/havanahub/investors/pkg/api/apiconnect"
)

// readOnly lists the procedures that never change the ledger.
var readOnly = map[string]bool{
	apiconnect.InvestorServiceGetDashboardProcedure:   true,
	apiconnect.InvestorServiceExportDocumentProcedure: true,
	apiconnect.InvestorServiceLoginProcedure:          true,
}

// LoggingInterceptor returns a Connect interceptor that logs one line per RPC
// with the method, whether it mutates the ledger, the resulting code and the
// duration. Rejected input (invalid argument, not found, failed precondition,
// unauthenticated) logs at warn; server faults log at error. The operator is
// logged only for authenticated calls.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			attrs := []any{
				"method", Method(procedure),
				"mutation", !readOnly[procedure],
				"code", Code(err),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if operator := GetOperator(ctx); operator != "" {
				attrs = append(attrs, "operator", operator)
			}

			switch {
			case err == nil:
				slog.Info("RPC ok", attrs...)
			case ServerFault(connect.CodeOf(err)):
				slog.Error("RPC failed", append(attrs, "error", err)...)
			default:
				slog.Warn("RPC rejected", append(attrs, "error", err)...)
			}
			return resp, err
		}
	}
}

// Method returns the last path element of a procedure,
// "/havana.v1.InvestorService/AddInvestor" → "AddInvestor".
func Method(procedure string) string {
	return procedure[strings.LastIndex(procedure, "/")+1:]
}

// Code names the outcome of a call: "ok" or the Connect code.
func Code(err error) string {
	if err == nil {
		return "ok"
	}
	return connect.CodeOf(err).String()
}

// ServerFault reports whether code means the server, not the caller, failed.
func ServerFault(code connect.Code) bool {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeFailedPrecondition,
		connect.CodeUnauthenticated, connect.CodePermissionDenied, connect.CodeCanceled,
		connect.CodeDeadlineExceeded:
		return false
	}
	return true
}
