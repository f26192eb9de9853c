package services

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shuttle/internal/domain"
)

func shareLinks(now func() time.Time) ShareLinkService {
	return ShareLinkService{
		Secret:  []byte("test-secret"),
		TTL:     72 * time.Hour,
		BaseURL: "https://shuttle.example.vn/book/",
		Now:     now,
	}
}

func TestShareLinkIssueAndVerify(t *testing.T) {
	svc := shareLinks(clock)

	link, err := svc.Issue("BP-TB", 0)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if !link.ExpiresAt.Equal(fixedNow.Add(72 * time.Hour)) {
		t.Fatalf("unexpected expiry %v", link.ExpiresAt)
	}
	if !strings.HasPrefix(link.URL, "https://shuttle.example.vn/book?token=") {
		t.Fatalf("unexpected url %q", link.URL)
	}

	route, err := svc.Verify(link.Token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if route != "BP-TB" {
		t.Fatalf("unexpected route %q", route)
	}
}

func TestShareLinkRejectsExpiredAndForeignTokens(t *testing.T) {
	link, err := shareLinks(clock).Issue("TB-BP", time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	later := func() time.Time { return fixedNow.Add(2 * time.Hour) }
	if _, err := shareLinks(later).Verify(link.Token); !domain.IsValidation(err) {
		t.Fatalf("expired token accepted: %v", err)
	}

	other := shareLinks(clock)
	other.Secret = []byte("another-secret")
	if _, err := other.Verify(link.Token); !domain.IsValidation(err) {
		t.Fatalf("token signed with another secret accepted: %v", err)
	}

	claims := jwt.MapClaims{"route": "TB-BP", "purpose": "login", "exp": fixedNow.Add(time.Hour).Unix()}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := shareLinks(clock).Verify(forged); !domain.IsValidation(err) {
		t.Fatalf("token with another purpose accepted: %v", err)
	}
}

func TestShareLinkIssueValidation(t *testing.T) {
	if _, err := shareLinks(clock).Issue("HN-SG", 0); !domain.IsValidation(err) {
		t.Fatalf("unknown route accepted: %v", err)
	}
	noSecret := shareLinks(clock)
	noSecret.Secret = nil
	if _, err := noSecret.Issue("TB-BP", 0); !domain.IsInternal(err) {
		t.Fatalf("expected internal error without secret, got %v", err)
	}
}
