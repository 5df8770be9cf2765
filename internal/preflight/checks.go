package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"mediacat/internal/config"
	"mediacat/internal/fetch"
)

const seriesAPITimeout = 10 * time.Second

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckInputFile verifies that path is a readable regular file.
func CheckInputFile(path string) Result {
	name := "Input " + path
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: "does not exist"}
		}
		return Result{Name: name, Detail: fmt.Sprintf("stat: %v", err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: "is a directory"}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("not readable: %v", err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d bytes", info.Size())}
}

// CheckSeriesAPI requests a single-item page to confirm the endpoint answers
// and accepts the credentials.
func CheckSeriesAPI(ctx context.Context, cfg config.DMM) Result {
	const name = "Series API"

	client, err := fetch.New(cfg.AppID, cfg.AffiliateID, cfg.BaseURL,
		fetch.WithFloorID(cfg.FloorID),
		fetch.WithHits(1),
		fetch.WithTimeout(seriesAPITimeout),
	)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	_, err = client.FetchPage(ctx, 1)
	var statusErr *fetch.StatusError
	switch {
	case err == nil:
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	case errors.As(err, &statusErr):
		switch statusErr.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return Result{Name: name, Detail: fmt.Sprintf("rejected credentials (%d)", statusErr.StatusCode)}
		default:
			return Result{Name: name, Detail: fmt.Sprintf("unexpected status (%d)", statusErr.StatusCode)}
		}
	default:
		return Result{Name: name, Detail: summarizeHTTPError(err)}
	}
}

func summarizeHTTPError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "request timed out"
	}
	return err.Error()
}
