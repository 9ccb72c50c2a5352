package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailer_BuildMessage(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, From: "portal@company.com"})

	gm := m.build(Message{To: "john@company.com", Subject: "Leave approved", Body: "Your leave was approved."})

	assert.Equal(t, []string{"portal@company.com"}, gm.GetHeader("From"))
	assert.Equal(t, []string{"john@company.com"}, gm.GetHeader("To"))
	assert.Equal(t, []string{"Leave approved"}, gm.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := gm.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Your leave was approved.")
}

func TestSMTPMailer_CanceledContext(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "127.0.0.1", Port: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Send(ctx, Message{To: "a@b.c"}), context.Canceled)
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Send(context.Background(), Message{}))
}
