package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
)

// PgGuildRepository reads guild/channel aggregates from Postgres. Resolution
// runs on every voice action and message send, so each aggregate is fetched
// with one pgx.Batch round trip.
type PgGuildRepository struct {
	pool *pgxpool.Pool
}

func NewPgGuildRepository(pool *pgxpool.Pool) *PgGuildRepository {
	return &PgGuildRepository{pool: pool}
}

func (r *PgGuildRepository) GetGuild(ctx context.Context, guildID string) (*guild.Guild, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgGuildRepository: nil pool")
	}

	batch := &pgx.Batch{}
	batch.Queue(
		"SELECT id::text, owner_id::text FROM guild.guild WHERE id = $1::uuid",
		guildID,
	)
	batch.Queue(`
		SELECT id::text, name, permissions, position
		FROM guild.role
		WHERE guild_id = $1::uuid
		ORDER BY position
	`, guildID)
	batch.Queue(`
		SELECT m.user_id::text,
		       COALESCE(array_agg(mr.role_id::text) FILTER (WHERE mr.role_id IS NOT NULL), '{}')
		FROM guild.member m
		LEFT JOIN guild.member_role mr
		  ON mr.guild_id = m.guild_id AND mr.user_id = m.user_id
		WHERE m.guild_id = $1::uuid
		GROUP BY m.user_id
	`, guildID)

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	g := &guild.Guild{}
	if err := results.QueryRow().Scan(&g.ID, &g.OwnerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, guild.ErrGuildNotFound
		}
		return nil, err
	}

	roleRows, err := results.Query()
	if err != nil {
		return nil, err
	}
	for roleRows.Next() {
		var (
			role  guild.Role
			perms int64
		)
		if err := roleRows.Scan(&role.ID, &role.Name, &perms, &role.Position); err != nil {
			roleRows.Close()
			return nil, err
		}
		role.Permissions = guild.Permissions(perms)
		g.Roles = append(g.Roles, role)
	}
	roleRows.Close()
	if roleRows.Err() != nil {
		return nil, roleRows.Err()
	}

	memberRows, err := results.Query()
	if err != nil {
		return nil, err
	}
	for memberRows.Next() {
		var m guild.Member
		if err := memberRows.Scan(&m.UserID, &m.RoleIDs); err != nil {
			memberRows.Close()
			return nil, err
		}
		g.Members = append(g.Members, m)
	}
	memberRows.Close()
	if memberRows.Err() != nil {
		return nil, memberRows.Err()
	}

	return g, nil
}

func (r *PgGuildRepository) GetChannel(ctx context.Context, channelID string) (*guild.Channel, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgGuildRepository: nil pool")
	}

	batch := &pgx.Batch{}
	batch.Queue(`
		SELECT c.id::text, COALESCE(c.guild_id::text, ''), COALESCE(c.owner_id::text, ''),
		       c.parent_id::text, c.is_synced, c.type,
		       p.id::text, COALESCE(p.guild_id::text, ''), p.is_synced, p.type
		FROM guild.channel c
		LEFT JOIN guild.channel p ON p.id = c.parent_id
		WHERE c.id = $1::uuid
	`, channelID)
	batch.Queue(`
		SELECT o.channel_id::text, o.target_id::text, o.target_type, o.allow, o.deny
		FROM guild.channel_overwrite o
		WHERE o.channel_id = $1::uuid
		   OR o.channel_id = (SELECT parent_id FROM guild.channel WHERE id = $1::uuid)
	`, channelID)
	batch.Queue(
		"SELECT user_id::text FROM guild.channel_recipient WHERE channel_id = $1::uuid",
		channelID,
	)

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	ch := &guild.Channel{}
	var (
		parentRef      *string
		parentIDCol    *string
		parentGuildID  *string
		parentIsSynced *bool
		parentType     *int16
		chType         int16
	)
	err := results.QueryRow().Scan(
		&ch.ID, &ch.GuildID, &ch.OwnerID, &parentRef, &ch.IsSynced, &chType,
		&parentIDCol, &parentGuildID, &parentIsSynced, &parentType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, guild.ErrChannelNotFound
		}
		return nil, err
	}
	ch.Type = guild.ChannelType(chType)
	ch.ParentID = parentRef
	if parentIDCol != nil {
		parent := &guild.Channel{ID: *parentIDCol}
		if parentGuildID != nil {
			parent.GuildID = *parentGuildID
		}
		if parentIsSynced != nil {
			parent.IsSynced = *parentIsSynced
		}
		if parentType != nil {
			parent.Type = guild.ChannelType(*parentType)
		}
		ch.Parent = parent
	}

	owRows, err := results.Query()
	if err != nil {
		return nil, err
	}
	for owRows.Next() {
		var (
			ow          guild.PermissionOverwrite
			targetType  int16
			allow, deny int64
		)
		if err := owRows.Scan(&ow.ChannelID, &ow.TargetID, &targetType, &allow, &deny); err != nil {
			owRows.Close()
			return nil, err
		}
		ow.TargetType = guild.OverwriteTarget(targetType)
		ow.Allow = guild.Permissions(allow)
		ow.Deny = guild.Permissions(deny)
		if ow.ChannelID == ch.ID {
			ch.Overwrites = append(ch.Overwrites, ow)
		} else if ch.Parent != nil && ow.ChannelID == ch.Parent.ID {
			ch.Parent.Overwrites = append(ch.Parent.Overwrites, ow)
		}
	}
	owRows.Close()
	if owRows.Err() != nil {
		return nil, owRows.Err()
	}

	recRows, err := results.Query()
	if err != nil {
		return nil, err
	}
	for recRows.Next() {
		var userID string
		if err := recRows.Scan(&userID); err != nil {
			recRows.Close()
			return nil, err
		}
		ch.RecipientIDs = append(ch.RecipientIDs, userID)
	}
	recRows.Close()
	if recRows.Err() != nil {
		return nil, recRows.Err()
	}

	return ch, nil
}
