package inmem

import (
	"context"
	"sync"

	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
	repository "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/persistence/repository/port"
)

// InMemGuildRepository holds guild and channel aggregates in memory. It backs
// tests and local runs without Postgres.
type InMemGuildRepository struct {
	mu       sync.RWMutex
	guilds   map[string]*guild.Guild
	channels map[string]*guild.Channel
}

func NewInMemGuildRepository() *InMemGuildRepository {
	return &InMemGuildRepository{
		guilds:   make(map[string]*guild.Guild),
		channels: make(map[string]*guild.Channel),
	}
}

var _ repository.GuildRepository = (*InMemGuildRepository)(nil)

// PutGuild registers or replaces a guild aggregate.
func (r *InMemGuildRepository) PutGuild(g *guild.Guild) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guilds[g.ID] = g
}

// PutChannel registers or replaces a channel aggregate.
func (r *InMemGuildRepository) PutChannel(ch *guild.Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[ch.ID] = ch
}

func (r *InMemGuildRepository) GetGuild(ctx context.Context, guildID string) (*guild.Guild, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.guilds[guildID]
	if !ok {
		return nil, guild.ErrGuildNotFound
	}
	return g, nil
}

func (r *InMemGuildRepository) GetChannel(ctx context.Context, channelID string) (*guild.Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.channels[channelID]
	if !ok {
		return nil, guild.ErrChannelNotFound
	}
	return ch, nil
}
