package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/project/lending/internal/entity"
	"github.com/project/lending/internal/usecase/outbox"
	"github.com/project/lending/internal/usecase/repository"
)

const (
	dialerTimeoutSeconds   = 30
	dialerKeepAliveSeconds = 180
	transportMaxIdleConns  = 100
	transportMaxConnsPerHost
	transportIdleConnTimeoutSeconds       = 90
	transportTLSHandshakeTimeoutSeconds   = 15
	transportExpectContinueTimeoutSeconds = 2
)

const contentType = "application/json"

const statusOk = 2

var errFailRequest = errors.New("Not 2xx response")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newOutboxClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   dialerTimeoutSeconds * time.Second,
		KeepAlive: dialerKeepAliveSeconds * time.Second,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          transportMaxIdleConns,
		MaxConnsPerHost:       transportMaxConnsPerHost,
		IdleConnTimeout:       transportIdleConnTimeoutSeconds * time.Second,
		TLSHandshakeTimeout:   transportTLSHandshakeTimeoutSeconds * time.Second,
		ExpectContinueTimeout: transportExpectContinueTimeoutSeconds * time.Second,
		MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
	}

	return &http.Client{Transport: transport}
}

func globalOutboxHandler(client *http.Client, borrowURL, returnURL string) outbox.GlobalHandler {
	return func(kind repository.OutboxKind) (outbox.KindHandler, error) {
		switch kind {
		case repository.OutboxKindLoanBorrowed:
			return loanEventHandler(client, borrowURL), nil
		case repository.OutboxKindLoanReturned:
			return loanEventHandler(client, returnURL), nil
		default:
			return nil, fmt.Errorf("unsupported outbox kind: %d", kind)
		}
	}
}

// loanEventHandler posts the stored event as is. Without a url the event
// has no subscriber and counts as delivered.
func loanEventHandler(client *http.Client, url string) outbox.KindHandler {
	return func(ctx context.Context, data []byte) error {
		var event entity.LoanEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return fmt.Errorf("can not deserialize data in loan outbox handler: %w", err)
		}

		if url == "" {
			return nil
		}

		request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("can not build post request for loan %s: %w", event.LoanID, err)
		}
		request.Header.Set("Content-Type", contentType)

		response, err := client.Do(request)
		if err != nil {
			return fmt.Errorf("can not make post request to given url: %w", err)
		}

		defer response.Body.Close()

		if response.StatusCode/100 != statusOk {
			return errFailRequest
		}

		return nil
	}
}
