package verifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/nebula/internal/config"
	inErrors "github.com/Alturino/nebula/internal/errors"
)

type fakeMailer struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func (m *fakeMailer) Send(_ context.Context, email string, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[email] = code
	return m.err
}

func (m *fakeMailer) code(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[email]
}

var testConfig = config.Verification{
	CodeTTL:     10 * time.Minute,
	RateWindow:  15 * time.Minute,
	MaxAttempts: 5,
	RateLimit:   5,
}

func setup(t *testing.T) (*miniredis.Miniredis, *fakeMailer, *Verifier) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	mailer := &fakeMailer{codes: map[string]string{}}
	return mr, mailer, NewVerifier(NewRedisStore(client), mailer, testConfig)
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}

func TestVerifySingleUse(t *testing.T) {
	c := context.Background()
	_, mailer, v := setup(t)

	issued, err := v.IssueCode(c, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", issued.Email)

	code := mailer.code("ada@example.com")
	require.Len(t, code, 6)

	require.NoError(t, v.Verify(c, "ada@example.com", code))
	assert.ErrorIs(t, v.Verify(c, "ada@example.com", code), inErrors.ErrNotSent)
}

func TestVerify(t *testing.T) {
	c := context.Background()
	tests := []struct {
		name     string
		prepare  func(t *testing.T, mr *miniredis.Miniredis, mailer *fakeMailer, v *Verifier) string
		expected error
	}{
		{
			name: "given nothing issued should return not sent",
			prepare: func(t *testing.T, mr *miniredis.Miniredis, mailer *fakeMailer, v *Verifier) string {
				return "123456"
			},
			expected: inErrors.ErrNotSent,
		},
		{
			name: "given malformed code should return invalid code",
			prepare: func(t *testing.T, mr *miniredis.Miniredis, mailer *fakeMailer, v *Verifier) string {
				_, err := v.IssueCode(c, "ada@example.com")
				require.NoError(t, err)
				return "12345"
			},
			expected: inErrors.ErrInvalidCode,
		},
		{
			name: "given wrong code should return invalid code",
			prepare: func(t *testing.T, mr *miniredis.Miniredis, mailer *fakeMailer, v *Verifier) string {
				_, err := v.IssueCode(c, "ada@example.com")
				require.NoError(t, err)
				return wrongCode(mailer.code("ada@example.com"))
			},
			expected: inErrors.ErrInvalidCode,
		},
		{
			name: "given expired code should return not sent",
			prepare: func(t *testing.T, mr *miniredis.Miniredis, mailer *fakeMailer, v *Verifier) string {
				_, err := v.IssueCode(c, "ada@example.com")
				require.NoError(t, err)
				mr.FastForward(testConfig.CodeTTL + time.Second)
				return mailer.code("ada@example.com")
			},
			expected: inErrors.ErrNotSent,
		},
		{
			name: "given replaced code should reject the old one",
			prepare: func(t *testing.T, mr *miniredis.Miniredis, mailer *fakeMailer, v *Verifier) string {
				_, err := v.IssueCode(c, "ada@example.com")
				require.NoError(t, err)
				old := mailer.code("ada@example.com")
				for mailer.code("ada@example.com") == old {
					_, err = v.Resend(c, "ada@example.com")
					require.NoError(t, err)
				}
				return old
			},
			expected: inErrors.ErrInvalidCode,
		},
		{
			name: "given differently cased email should verify",
			prepare: func(t *testing.T, mr *miniredis.Miniredis, mailer *fakeMailer, v *Verifier) string {
				_, err := v.IssueCode(c, " Ada@Example.com ")
				require.NoError(t, err)
				return mailer.code("ada@example.com")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr, mailer, v := setup(t)
			code := tt.prepare(t, mr, mailer, v)
			err := v.Verify(c, "ada@example.com", code)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestWrongCodeKeepsPendingCode(t *testing.T) {
	c := context.Background()
	_, mailer, v := setup(t)

	_, err := v.IssueCode(c, "ada@example.com")
	require.NoError(t, err)
	code := mailer.code("ada@example.com")

	assert.ErrorIs(t, v.Verify(c, "ada@example.com", wrongCode(code)), inErrors.ErrInvalidCode)
	assert.NoError(t, v.Verify(c, "ada@example.com", code))
}

func TestMaxAttemptsDeletesCode(t *testing.T) {
	c := context.Background()
	_, mailer, v := setup(t)

	_, err := v.IssueCode(c, "ada@example.com")
	require.NoError(t, err)
	code := mailer.code("ada@example.com")

	for i := 0; i < testConfig.MaxAttempts; i++ {
		assert.ErrorIs(t, v.Verify(c, "ada@example.com", wrongCode(code)), inErrors.ErrInvalidCode)
	}
	assert.ErrorIs(t, v.Verify(c, "ada@example.com", code), inErrors.ErrNotSent)
}

func TestIssueRateLimited(t *testing.T) {
	c := context.Background()
	mr, _, v := setup(t)

	for i := 0; i < testConfig.RateLimit; i++ {
		_, err := v.IssueCode(c, "ada@example.com")
		require.NoError(t, err)
	}
	_, err := v.IssueCode(c, "ada@example.com")
	assert.ErrorIs(t, err, inErrors.ErrRateLimited)

	_, err = v.IssueCode(c, "grace@example.com")
	assert.NoError(t, err)

	mr.FastForward(testConfig.RateWindow + time.Second)
	_, err = v.IssueCode(c, "ada@example.com")
	assert.NoError(t, err)
}

func TestIssueDeliveryFailure(t *testing.T) {
	c := context.Background()
	_, mailer, v := setup(t)
	mailer.err = errors.New("smtp down")

	_, err := v.IssueCode(c, "ada@example.com")
	assert.ErrorIs(t, err, inErrors.ErrDelivery)

	assert.ErrorIs(t, v.Verify(c, "ada@example.com", mailer.code("ada@example.com")), inErrors.ErrNotSent)
}

func TestConcurrentVerifyOnlyOneSucceeds(t *testing.T) {
	c := context.Background()
	_, mailer, v := setup(t)

	_, err := v.IssueCode(c, "ada@example.com")
	require.NoError(t, err)
	code := mailer.code("ada@example.com")

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- v.Verify(c, "ada@example.com", code)
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, inErrors.ErrNotSent)
	}
	assert.Equal(t, 1, succeeded)
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[0-9]{6}$`, code)
	}
}
