package alert

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shiftwatch/internal/config"
)

func TestMailerSkipsWhenUnconfigured(t *testing.T) {
	m := NewMailer(config.SMTPConfig{}, "", zap.NewNop())
	err := m.Send(context.Background(), "subject", "body")
	require.NoError(t, err, "missing SMTP host drops the alert instead of failing the run")
}
