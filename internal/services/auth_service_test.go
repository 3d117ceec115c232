package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/shivam7147/Quizio-backend/internal/dtos"
	"github.com/shivam7147/Quizio-backend/internal/models"
	"github.com/shivam7147/Quizio-backend/internal/utils"
)

// ---------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------

type fakeUserRepo struct {
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	cp := *user
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	u, ok := r.byEmail[email]
	if !ok {
		return errors.New("no rows")
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakePendingRepo struct {
	byID map[uuid.UUID]*models.PendingRegistration
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{byID: make(map[uuid.UUID]*models.PendingRegistration)}
}

func (r *fakePendingRepo) Create(ctx context.Context, p *models.PendingRegistration) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *fakePendingRepo) GetByEmail(ctx context.Context, email string) (*models.PendingRegistration, error) {
	for _, p := range r.byID {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePendingRepo) GetByToken(ctx context.Context, token string) (*models.PendingRegistration, error) {
	for _, p := range r.byID {
		if p.VerificationToken == token {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePendingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakePendingRepo) CleanupExpired(ctx context.Context) error { return nil }

type fakeResetRepo struct {
	byID map[uuid.UUID]*models.PasswordResetCode
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{byID: make(map[uuid.UUID]*models.PasswordResetCode)}
}

func (r *fakeResetRepo) CreateCode(ctx context.Context, code *models.PasswordResetCode) error {
	for id, c := range r.byID {
		if c.Email == code.Email {
			delete(r.byID, id)
		}
	}
	cp := *code
	r.byID[code.ID] = &cp
	return nil
}

func (r *fakeResetRepo) GetCode(ctx context.Context, email, code string) (*models.PasswordResetCode, error) {
	for _, c := range r.byID {
		if c.Email == email && c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeResetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeResetRepo) CleanupExpired(ctx context.Context) error { return nil }

// fakeMailer records sends and can be told to fail.
type fakeMailer struct {
	failNext    bool
	tokens      []string
	resetCodes  []string
	lastAddress string
}

func (m *fakeMailer) SendVerificationEmail(to, token string) error {
	if m.failNext {
		m.failNext = false
		return utils.ErrExternalServiceFailure
	}
	m.lastAddress = to
	m.tokens = append(m.tokens, token)
	return nil
}

func (m *fakeMailer) SendResetCodeEmail(to, code string) error {
	if m.failNext {
		m.failNext = false
		return utils.ErrExternalServiceFailure
	}
	m.lastAddress = to
	m.resetCodes = append(m.resetCodes, code)
	return nil
}

type fakeJWT struct{}

func (fakeJWT) GenerateSessionToken(user *models.User) (string, error) {
	return "token-for-" + user.Email, nil
}

type authFixture struct {
	users   *fakeUserRepo
	pending *fakePendingRepo
	resets  *fakeResetRepo
	mailer  *fakeMailer
	svc     AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:   newFakeUserRepo(),
		pending: newFakePendingRepo(),
		resets:  newFakeResetRepo(),
		mailer:  &fakeMailer{},
	}
	f.svc = NewAuthService(f.users, f.pending, f.resets, fakeJWT{}, f.mailer, testConfig())
	return f
}

func registerReq() dtos.RegisterRequest {
	return dtos.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "hunter200"}
}

// ---------------------------------------------------------------------
// Register / VerifyEmail
// ---------------------------------------------------------------------

func TestRegisterCreatesPendingAndSendsEmail(t *testing.T) {
	f := newAuthFixture()

	require.NoError(t, f.svc.Register(context.Background(), registerReq()))

	require.Len(t, f.mailer.tokens, 1)
	require.Equal(t, "alice@example.com", f.mailer.lastAddress)

	pending, err := f.pending.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, pending)
	require.Equal(t, f.mailer.tokens[0], pending.VerificationToken)
	// Stored password must be hashed, never plaintext.
	require.NotEqual(t, "hunter200", pending.PasswordHash)
}

func TestRegisterRejectsExistingUser(t *testing.T) {
	f := newAuthFixture()
	require.NoError(t, f.users.Create(context.Background(), &models.User{ID: uuid.New(), Email: "alice@example.com"}))

	err := f.svc.Register(context.Background(), registerReq())
	require.ErrorIs(t, err, utils.ErrUserExists)
}

func TestRegisterRejectsDuplicatePending(t *testing.T) {
	f := newAuthFixture()
	require.NoError(t, f.svc.Register(context.Background(), registerReq()))

	err := f.svc.Register(context.Background(), registerReq())
	require.ErrorIs(t, err, utils.ErrPendingExists)
}

func TestRegisterRollsBackPendingOnSendFailure(t *testing.T) {
	f := newAuthFixture()
	f.mailer.failNext = true

	err := f.svc.Register(context.Background(), registerReq())
	require.ErrorIs(t, err, utils.ErrExternalServiceFailure)

	// The pending row must be gone so a retry starts clean.
	pending, err := f.pending.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Nil(t, pending)

	require.NoError(t, f.svc.Register(context.Background(), registerReq()))
}

func TestVerifyEmailPromotesPendingToUser(t *testing.T) {
	f := newAuthFixture()
	require.NoError(t, f.svc.Register(context.Background(), registerReq()))
	token := f.mailer.tokens[0]

	user, sessionToken, err := f.svc.VerifyEmail(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, "Alice", user.Name)
	require.NotEmpty(t, sessionToken)

	// The token is single-use.
	_, _, err = f.svc.VerifyEmail(context.Background(), token)
	require.ErrorIs(t, err, utils.ErrInvalidToken)

	// And the account can log in with the original password.
	_, _, err = f.svc.Login(context.Background(), "alice@example.com", "hunter200")
	require.NoError(t, err)
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	f := newAuthFixture()
	_, _, err := f.svc.VerifyEmail(context.Background(), "nope")
	require.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestVerifyEmailConflictDiscardsPending(t *testing.T) {
	f := newAuthFixture()
	require.NoError(t, f.svc.Register(context.Background(), registerReq()))
	token := f.mailer.tokens[0]

	// An account appears for the email before verification completes.
	require.NoError(t, f.users.Create(context.Background(), &models.User{ID: uuid.New(), Email: "alice@example.com"}))

	_, _, err := f.svc.VerifyEmail(context.Background(), token)
	require.ErrorIs(t, err, utils.ErrUserExists)

	pending, err := f.pending.GetByToken(context.Background(), token)
	require.NoError(t, err)
	require.Nil(t, pending)
}

// ---------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------

func TestLoginInvalidCredentials(t *testing.T) {
	f := newAuthFixture()
	require.NoError(t, f.svc.Register(context.Background(), registerReq()))
	_, _, err := f.svc.VerifyEmail(context.Background(), f.mailer.tokens[0])
	require.NoError(t, err)

	_, _, err = f.svc.Login(context.Background(), "alice@example.com", "wrong")
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, _, err = f.svc.Login(context.Background(), "unknown@example.com", "hunter200")
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

// ---------------------------------------------------------------------
// Password reset
// ---------------------------------------------------------------------

func (f *authFixture) registerAndVerify(t *testing.T) {
	t.Helper()
	require.NoError(t, f.svc.Register(context.Background(), registerReq()))
	_, _, err := f.svc.VerifyEmail(context.Background(), f.mailer.tokens[0])
	require.NoError(t, err)
}

func TestSendResetCodeRequiresAccount(t *testing.T) {
	f := newAuthFixture()
	err := f.svc.SendResetCode(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, utils.ErrUserNotFound)
}

func TestSendResetCodeReplacesPriorCode(t *testing.T) {
	f := newAuthFixture()
	f.registerAndVerify(t)

	require.NoError(t, f.svc.SendResetCode(context.Background(), "alice@example.com"))
	require.NoError(t, f.svc.SendResetCode(context.Background(), "alice@example.com"))
	require.Len(t, f.mailer.resetCodes, 2)

	first, second := f.mailer.resetCodes[0], f.mailer.resetCodes[1]
	if first != second {
		require.ErrorIs(t,
			f.svc.VerifyResetCode(context.Background(), "alice@example.com", first),
			utils.ErrInvalidResetCode)
	}
	require.NoError(t, f.svc.VerifyResetCode(context.Background(), "alice@example.com", second))
}

func TestResetPasswordFlow(t *testing.T) {
	f := newAuthFixture()
	f.registerAndVerify(t)

	require.NoError(t, f.svc.SendResetCode(context.Background(), "alice@example.com"))
	code := f.mailer.resetCodes[0]
	require.Len(t, code, 6)

	require.NoError(t, f.svc.ResetPassword(context.Background(), dtos.ResetPasswordRequest{
		Email:       "alice@example.com",
		Code:        code,
		NewPassword: "newpassword",
	}))

	// The code is consumed.
	require.ErrorIs(t,
		f.svc.VerifyResetCode(context.Background(), "alice@example.com", code),
		utils.ErrInvalidResetCode)

	_, _, err := f.svc.Login(context.Background(), "alice@example.com", "hunter200")
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, _, err = f.svc.Login(context.Background(), "alice@example.com", "newpassword")
	require.NoError(t, err)
}

func TestResetPasswordRejectsBadCode(t *testing.T) {
	f := newAuthFixture()
	f.registerAndVerify(t)

	err := f.svc.ResetPassword(context.Background(), dtos.ResetPasswordRequest{
		Email:       "alice@example.com",
		Code:        "000000",
		NewPassword: "newpassword",
	})
	require.ErrorIs(t, err, utils.ErrInvalidResetCode)
}
