package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laevateinn17/viscord-sub000/internal/pkg/event"
	message "github.com/Laevateinn17/viscord-sub000/internal/pkg/message/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/message/persistence/repository/inmem"
)

type stubLister struct {
	recipients []string
}

func (s *stubLister) ListRecipients(context.Context, string, string) ([]string, error) {
	return s.recipients, nil
}

type captureIncrementer struct {
	bumps []string
}

func (c *captureIncrementer) Increment(_ context.Context, userID string, channelID string) error {
	c.bumps = append(c.bumps, userID+"/"+channelID)
	return nil
}

type publishCall struct {
	recipients []string
	ev         event.Event
}

type captureGateway struct {
	published []publishCall
}

func (g *captureGateway) Publish(_ context.Context, recipientIDs []string, ev event.Event) error {
	g.published = append(g.published, publishCall{recipients: recipientIDs, ev: ev})
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreateMessagePersistsBumpsAndFansOut(t *testing.T) {
	repo := inmem.NewInMemMessageRepository()
	unread := &captureIncrementer{}
	gw := &captureGateway{}
	uc := NewCreateMessageUseCase(repo, unread, &stubLister{recipients: []string{"bob", "carol"}}, gw)

	msg, err := uc.Execute(context.Background(), CreateMessageInput{
		ChannelID: "channel-1",
		AuthorID:  "alice",
		Body:      strPtr("hello"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, msg.ID)

	assert.ElementsMatch(t, []string{"bob/channel-1", "carol/channel-1"}, unread.bumps)

	require.Len(t, gw.published, 1)
	assert.ElementsMatch(t, []string{"bob", "carol"}, gw.published[0].recipients)
	assert.Equal(t, event.TypeMessageCreate, gw.published[0].ev.Type)

	payload, err := gw.published[0].ev.Decode()
	require.NoError(t, err)
	created := payload.(event.MessageCreatePayload)
	assert.Equal(t, msg.ID, created.MessageID)
	assert.Equal(t, "alice", created.AuthorID)
}

func TestCreateMessageRejectsEmptyBody(t *testing.T) {
	uc := NewCreateMessageUseCase(inmem.NewInMemMessageRepository(), &captureIncrementer{}, &stubLister{}, &captureGateway{})

	_, err := uc.Execute(context.Background(), CreateMessageInput{
		ChannelID: "channel-1",
		AuthorID:  "alice",
		Body:      strPtr("   "),
	})
	assert.ErrorIs(t, err, message.ErrEmptyMessage)

	_, err = uc.Execute(context.Background(), CreateMessageInput{ChannelID: "channel-1", AuthorID: "alice"})
	assert.ErrorIs(t, err, message.ErrEmptyMessage)
}

func TestCreateMessageWithoutRecipientsSkipsFanout(t *testing.T) {
	gw := &captureGateway{}
	uc := NewCreateMessageUseCase(inmem.NewInMemMessageRepository(), &captureIncrementer{}, &stubLister{}, gw)

	_, err := uc.Execute(context.Background(), CreateMessageInput{
		ChannelID: "channel-1",
		AuthorID:  "alice",
		Body:      strPtr("talking to myself"),
	})
	require.NoError(t, err)
	assert.Empty(t, gw.published)
}

func TestListMessagesPagesNewestFirst(t *testing.T) {
	repo := inmem.NewInMemMessageRepository()
	create := NewCreateMessageUseCase(repo, &captureIncrementer{}, &stubLister{}, &captureGateway{})
	list := NewListMessagesUseCase(repo)
	ctx := context.Background()

	var ids []string
	for _, body := range []string{"first", "second", "third"} {
		msg, err := create.Execute(ctx, CreateMessageInput{ChannelID: "channel-1", AuthorID: "alice", Body: strPtr(body)})
		require.NoError(t, err)
		ids = append(ids, msg.ID)
	}

	msgs, err := list.Execute(ctx, ListMessagesInput{ChannelID: "channel-1", Limit: 2})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "third", *msgs[0].Body)
	assert.Equal(t, "second", *msgs[1].Body)

	msgs, err = list.Execute(ctx, ListMessagesInput{ChannelID: "channel-1", Before: ids[1]})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "first", *msgs[0].Body)
}
