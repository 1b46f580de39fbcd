package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"celebrato-backend/config"

	"github.com/sony/gobreaker"
	"github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// SMSSender delivers a text message to a phone number.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

type TwilioSender struct {
	client  *twilio.RestClient
	from    string
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

func NewTwilioSender(cfg config.TwilioConfig, log *zap.Logger) *TwilioSender {
	restClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTwilioSender(restClient, cfg.PhoneNumber, log)
}

func newTwilioSender(restClient *twilio.RestClient, from string, log *zap.Logger) *TwilioSender {
	return &TwilioSender{
		client:  restClient,
		from:    from,
		breaker: newCircuitBreaker("twilio-sms", log),
		log:     log,
	}
}

func newCircuitBreaker(name string, log *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         name,
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      60 * time.Second,
		ReadyToTrip:  readyToTrip,
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

func readyToTrip(counts gobreaker.Counts) bool {
	if counts.Requests < 3 {
		return false
	}
	failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
	return failureRatio >= 0.6
}

// breakerSuccess keeps per-recipient rejections (bad number, unsubscribed,
// ...) out of the failure count. Only transport errors, 5xx and 429 count
// against Twilio itself.
func breakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var restErr *client.TwilioRestError
	if errors.As(err, &restErr) {
		return restErr.Status >= 400 && restErr.Status < 500 &&
			restErr.Status != http.StatusTooManyRequests
	}
	return false
}

// Send blocks until Twilio answers or ctx is done. The underlying request is
// not cancellable, so a timed out call may still deliver later.
func (t *TwilioSender) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	done := make(chan error, 1)
	go func() {
		resp, err := t.breaker.Execute(func() (interface{}, error) {
			return t.client.Api.CreateMessage(params)
		})
		if err == nil {
			if msg, ok := resp.(*twilioApi.ApiV2010Message); ok && msg.Sid != nil {
				t.log.Info("sms sent", zap.String("to", to), zap.String("sid", *msg.Sid))
			} else {
				t.log.Info("sms sent, no SID returned", zap.String("to", to))
			}
		}
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("twilio send to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogSender stands in for Twilio when no credentials are configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (l *LogSender) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.log.Info("sms delivery disabled, message not sent",
		zap.String("to", to),
		zap.String("body", body))
	return nil
}
