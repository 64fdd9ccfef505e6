package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/accounts/internal/errors"
)

// assertBizMetricLine checks that the Prometheus output contains a business metric
// matching the given name, partial label pattern and value. The regex tolerates the
// OTel scope labels added by the exporter.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func newBusinessMetrics(t *testing.T, namespace string) (BusinessMetrics, *Provider) {
	t.Helper()
	provider, err := NewProvider(namespace)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, provider.Shutdown(context.Background())) })

	bm, err := NewBusinessMetrics(provider.MeterProvider(), namespace)
	require.NoError(t, err)
	return bm, provider
}

func TestBusinessMetrics_Recorded(t *testing.T) {
	bm, provider := newBusinessMetrics(t, "integration_test")
	ctx := context.Background()

	bm.RecordOperation(ctx, "auth", "sign_in", StatusSuccess)
	bm.RecordOperation(ctx, "auth", "sign_in", StatusSuccess)
	bm.RecordOperation(ctx, "auth", "sign_in", StatusRejected)
	bm.RecordOperation(ctx, "account", "sign_up", StatusSuccess)

	bm.RecordDuration(ctx, "auth", "sign_in", 50*time.Millisecond, StatusSuccess)
	bm.RecordDuration(ctx, "auth", "sign_in", 60*time.Millisecond, StatusSuccess)
	bm.RecordDuration(ctx, "account", "sign_up", 10*time.Millisecond, StatusSuccess)

	output := scrape(t, provider)

	assertBizMetricLine(t, output, `integration_test_operations_total`,
		`domain="auth".*operation="sign_in".*status="success"`, `2`)
	assertBizMetricLine(t, output, `integration_test_operations_total`,
		`domain="auth".*operation="sign_in".*status="rejected"`, `1`)
	assertBizMetricLine(t, output, `integration_test_operations_total`,
		`domain="account".*operation="sign_up".*status="success"`, `1`)
	assertBizMetricLine(t, output, `integration_test_operation_duration_seconds_count`,
		`domain="auth".*operation="sign_in".*status="success"`, `2`)
	assertBizMetricLine(t, output, `integration_test_operation_duration_seconds_sum`,
		`domain="account".*operation="sign_up".*status="success"`, ``)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, StatusSuccess},
		{"coded", apperrors.NewCoded(apperrors.ErrUnauthorized, "INVALID_CREDENTIALS"), StatusRejected},
		{"wrapped coded", apperrors.Wrap(apperrors.NewCoded(apperrors.ErrInvalidInput, "TOKEN_INVALID"), "activate"), StatusRejected},
		{"field errors", apperrors.NewValidationError("email", "This email is already used."), StatusRejected},
		{"bare sentinel", apperrors.ErrNotFound, StatusError},
		{"infrastructure", assert.AnError, StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestTrack(t *testing.T) {
	bm, provider := newBusinessMetrics(t, "track_test")
	ctx := context.Background()

	Track(ctx, bm, "account", "set_password", time.Now(), nil)
	Track(ctx, bm, "account", "set_password", time.Now(), apperrors.NewCoded(apperrors.ErrInvalidInput, "TOKEN_INVALID"))
	Track(ctx, bm, "account", "set_password", time.Now(), assert.AnError)

	output := scrape(t, provider)

	for _, status := range []string{StatusSuccess, StatusRejected, StatusError} {
		assertBizMetricLine(t, output, `track_test_operations_total`,
			`domain="account".*operation="set_password".*status="`+status+`"`, `1`)
	}
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()
	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)

	assert.NotPanics(t, func() {
		noOpMetrics.RecordOperation(context.Background(), "auth", "sign_in", StatusSuccess)
		noOpMetrics.RecordDuration(context.Background(), "account", "sign_up", time.Millisecond, StatusError)
	})
}
