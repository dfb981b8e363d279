package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupinvites/internal/domain"
)

type fakeNotifier struct {
	sent []*domain.InviteLinkEmailData
	err  error
}

func (f *fakeNotifier) SendInviteLink(ctx context.Context, data *domain.InviteLinkEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestIssuer(dir *fakeDirectory, notifier domain.InviteNotifier) domain.InviteIssuer {
	return NewInviteIssuer(dir, notifier, testLogger(), "https://invites.example.com", "role-1")
}

func TestIssueForGroup_ReturnsExistingInvitation(t *testing.T) {
	existing := &domain.Invitation{ID: "inv-1", Code: "Ab12Cd", Groups: []domain.GroupRef{{ID: "g1"}}}
	dir := &fakeDirectory{invitations: []*domain.Invitation{existing}}
	issuer := newTestIssuer(dir, nil)

	got, err := issuer.IssueForGroup(context.Background(), "g1")
	require.NoError(t, err)
	assert.Same(t, existing, got)
	assert.Equal(t, 0, dir.createCalls, "existing invitation must not trigger a create")
}

func TestIssueForGroup_CreatesWhenNoneExists(t *testing.T) {
	dir := &fakeDirectory{createdCode: "Xy34Zw"}
	issuer := newTestIssuer(dir, nil)

	got, err := issuer.IssueForGroup(context.Background(), "g1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Xy34Zw", got.Code)
	assert.Equal(t, 1, dir.createCalls)
	assert.Equal(t, 2, dir.listCalls, "creation requires a follow-up read")
}

func TestIssueForGroup_GetOrCreateIsIdempotent(t *testing.T) {
	dir := &fakeDirectory{createdCode: "Xy34Zw"}
	issuer := newTestIssuer(dir, nil)

	first, err := issuer.IssueForGroup(context.Background(), "g1")
	require.NoError(t, err)
	second, err := issuer.IssueForGroup(context.Background(), "g1")
	require.NoError(t, err)

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, 1, dir.createCalls, "second call must reuse the created invitation")
	assert.Len(t, dir.invitations, 1)
}

func TestIssueForGroup_SelectsCanonicalFirst(t *testing.T) {
	dir := &fakeDirectory{invitations: []*domain.Invitation{
		{ID: "inv-other", Code: "Zz00Zz", Groups: []domain.GroupRef{{ID: "g9"}}},
		{ID: "inv-1", Code: "Ab12Cd", Groups: []domain.GroupRef{{ID: "g1"}}},
		{ID: "inv-2", Code: "Ef56Gh", Groups: []domain.GroupRef{{ID: "g1"}}},
	}}
	issuer := newTestIssuer(dir, nil)

	got, err := issuer.IssueForGroup(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "inv-1", got.ID, "first invitation in listing order is canonical")
}

func TestIssueForGroup_MatchesGroupInAnyPosition(t *testing.T) {
	dir := &fakeDirectory{invitations: []*domain.Invitation{
		{ID: "inv-1", Code: "Ab12Cd", Groups: []domain.GroupRef{{ID: "g9"}, {ID: "g1"}}},
	}}
	issuer := newTestIssuer(dir, nil)

	got, err := issuer.IssueForGroup(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "inv-1", got.ID)
}

func TestIssueForGroup_EmptyRefetchIsFailure(t *testing.T) {
	// createdCode unset: the create succeeds but never becomes visible.
	dir := &fakeDirectory{}
	issuer := newTestIssuer(dir, nil)

	got, err := issuer.IssueForGroup(context.Background(), "g1")
	require.Error(t, err)
	assert.Nil(t, got, "a record must never be synthesized")
}

func TestIssueForGroup_Errors(t *testing.T) {
	t.Run("missing group id", func(t *testing.T) {
		issuer := newTestIssuer(&fakeDirectory{}, nil)
		_, err := issuer.IssueForGroup(context.Background(), "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("list fails", func(t *testing.T) {
		issuer := newTestIssuer(&fakeDirectory{listErr: errors.New("boom")}, nil)
		_, err := issuer.IssueForGroup(context.Background(), "g1")
		require.Error(t, err)
	})

	t.Run("create fails", func(t *testing.T) {
		issuer := newTestIssuer(&fakeDirectory{createErr: errors.New("boom")}, nil)
		_, err := issuer.IssueForGroup(context.Background(), "g1")
		require.Error(t, err)
	})
}

func TestIssueForEmail(t *testing.T) {
	t.Run("uses the user's first group", func(t *testing.T) {
		dir := &fakeDirectory{
			users: map[string]*domain.User{
				"a@x.com": {ID: "u1", Email: "a@x.com", Groups: []domain.GroupRef{{ID: "g1"}, {ID: "g2"}}},
			},
			invitations: []*domain.Invitation{
				{ID: "inv-1", Code: "Ab12Cd", Groups: []domain.GroupRef{{ID: "g1"}}},
			},
		}
		issuer := newTestIssuer(dir, nil)

		got, err := issuer.IssueForEmail(context.Background(), "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, "inv-1", got.ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		issuer := newTestIssuer(&fakeDirectory{}, nil)
		_, err := issuer.IssueForEmail(context.Background(), "nobody@x.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("user without groups", func(t *testing.T) {
		dir := &fakeDirectory{
			users: map[string]*domain.User{"a@x.com": {ID: "u1", Email: "a@x.com"}},
		}
		issuer := newTestIssuer(dir, nil)
		_, err := issuer.IssueForEmail(context.Background(), "a@x.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAppendInvitees_RegistersRecipients(t *testing.T) {
	dir := &fakeDirectory{}
	notifier := &fakeNotifier{}
	issuer := newTestIssuer(dir, notifier)
	inv := &domain.Invitation{ID: "inv-1", Code: "Ab12Cd", Groups: []domain.GroupRef{{ID: "g1", Name: "Insiders"}}}

	issuer.AppendInvitees(context.Background(), inv, []string{"a@x.com", "b@x.com"})

	assert.Equal(t, "inv-1", dir.updatedID)
	assert.True(t, dir.updatedParams.ShouldSendEmail)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, dir.updatedParams.Emails)

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, "a@x.com", notifier.sent[0].Email)
	assert.Equal(t, "Insiders", notifier.sent[0].GroupName)
	assert.Equal(t, "https://invites.example.com/invite/Ab12Cd", notifier.sent[0].Link)
}

func TestAppendInvitees_CommaStringAndSliceAreEquivalent(t *testing.T) {
	inv := &domain.Invitation{ID: "inv-1", Code: "Ab12Cd", Groups: []domain.GroupRef{{ID: "g1"}}}

	fromString := &fakeDirectory{}
	newTestIssuer(fromString, nil).AppendInvitees(context.Background(), inv, domain.SplitRecipients("a@x.com, b@x.com"))

	fromSlice := &fakeDirectory{}
	newTestIssuer(fromSlice, nil).AppendInvitees(context.Background(), inv, []string{"a@x.com", "b@x.com"})

	assert.Equal(t, fromSlice.updatedParams, fromString.updatedParams)
}

func TestAppendInvitees_FailuresAreSwallowed(t *testing.T) {
	t.Run("update fails", func(t *testing.T) {
		dir := &fakeDirectory{updateErr: errors.New("boom")}
		notifier := &fakeNotifier{}
		issuer := newTestIssuer(dir, notifier)
		inv := &domain.Invitation{ID: "inv-1", Code: "Ab12Cd"}

		issuer.AppendInvitees(context.Background(), inv, []string{"a@x.com"})
		assert.Empty(t, notifier.sent, "no emails after a failed registration")
	})

	t.Run("notifier fails", func(t *testing.T) {
		dir := &fakeDirectory{}
		issuer := newTestIssuer(dir, &fakeNotifier{err: errors.New("boom")})
		inv := &domain.Invitation{ID: "inv-1", Code: "Ab12Cd"}

		issuer.AppendInvitees(context.Background(), inv, []string{"a@x.com"})
		assert.Equal(t, "inv-1", dir.updatedID, "registration still happened")
	})

	t.Run("no recipients is a no-op", func(t *testing.T) {
		dir := &fakeDirectory{}
		issuer := newTestIssuer(dir, nil)
		issuer.AppendInvitees(context.Background(), &domain.Invitation{ID: "inv-1"}, nil)
		assert.Empty(t, dir.updatedID)
	})
}

func TestInviteLink(t *testing.T) {
	issuer := newTestIssuer(&fakeDirectory{}, nil)
	inv := &domain.Invitation{Code: "Ab12Cd"}
	assert.Equal(t, "https://invites.example.com/invite/Ab12Cd", issuer.InviteLink(inv))
}
