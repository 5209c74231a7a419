package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestWrapError(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError(cause, ErrConfiguration, "load profile")

	if !Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration in chain, got %v", err)
	}
	if !Is(err, cause) {
		t.Errorf("expected cause in chain, got %v", err)
	}
	if !strings.Contains(err.Error(), "load profile") {
		t.Errorf("expected message in error, got %q", err.Error())
	}
}

func TestRemoteError(t *testing.T) {
	err := error(&RemoteError{StatusCode: http.StatusNotFound, Message: "404 Project Not Found"})

	if !Is(err, ErrHTTPResponse) {
		t.Error("RemoteError should unwrap to ErrHTTPResponse")
	}
	if !IsNotFound(err) {
		t.Error("expected IsNotFound to be true")
	}
	if StatusCode(err) != 404 {
		t.Errorf("expected status 404, got %d", StatusCode(err))
	}
	if !strings.Contains(err.Error(), "(404 Not Found): 404 Project Not Found") {
		t.Errorf("unexpected message %q", err.Error())
	}

	wrapped := WrapError(err, ErrPagination, "fetch page")
	var remote *RemoteError
	if !As(wrapped, &remote) || remote.StatusCode != 404 {
		t.Errorf("expected RemoteError through wrapping, got %v", wrapped)
	}
}

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&TransportError{Method: "GET", URL: "https://git.example.com/api/v4/projects", Err: cause})

	if !Is(err, ErrHTTPRequest) || !Is(err, cause) {
		t.Errorf("expected sentinel and cause in chain: %v", err)
	}
	if StatusCode(err) != 0 {
		t.Error("transport errors carry no status")
	}
}

func TestDecodeError(t *testing.T) {
	err := error(&DecodeError{Target: "[]gitlab.Project", Err: errors.New("unexpected EOF")})
	if !Is(err, ErrDecode) {
		t.Error("DecodeError should unwrap to ErrDecode")
	}
	if Is(err, ErrHTTPResponse) {
		t.Error("DecodeError is not a remote error")
	}
}
