// Package postgres is implementation of storage interface.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/timeline/internal/entities"
	"github.com/Decentr-net/timeline/internal/storage"
)

var log = logrus.WithField("layer", "storage").WithField("package", "postgres")

const eventColumns = `
	v.id, v.event_type, v.event_subtype, v.actor_type, v.actor_id, v.subject_type, v.subject_id,
	v.target_type, v.target_id, v.title, v.description, v.content, v.amount_sats, v.amount_btc, v.quantity,
	v.visibility, v.event_timestamp, v.created_at, v.updated_at, v.parent_event_id, v.thread_id,
	v.is_featured, v.is_deleted, v.deleted_at, v.deletion_reason, v.metadata, v.tags`

const enrichedColumns = `
	v.actor_name, v.actor_avatar, v.subject_name, v.subject_avatar, v.target_name, v.target_avatar,
	v.likes_count, v.shares_count, v.comments_count`

const rawColumns = `
	NULL AS actor_name, NULL AS actor_avatar, NULL AS subject_name, NULL AS subject_avatar,
	NULL AS target_name, NULL AS target_avatar, 0 AS likes_count, 0 AS shares_count, 0 AS comments_count`

// nolint: gochecknoglobals
var sourceTables = map[storage.Source]string{
	storage.RawSource:       "timeline_event",
	storage.EnrichedSource:  "enriched_timeline_event",
	storage.CommunitySource: "community_timeline_event",
}

type pg struct {
	ext sqlx.ExtContext
}

type eventDTO struct {
	ID             string         `db:"id"`
	Type           string         `db:"event_type"`
	Subtype        string         `db:"event_subtype"`
	ActorType      string         `db:"actor_type"`
	ActorID        string         `db:"actor_id"`
	SubjectType    sql.NullString `db:"subject_type"`
	SubjectID      sql.NullString `db:"subject_id"`
	TargetType     sql.NullString `db:"target_type"`
	TargetID       sql.NullString `db:"target_id"`
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	Content        string         `db:"content"`
	AmountSats     *int64         `db:"amount_sats"`
	AmountBTC      *float64       `db:"amount_btc"`
	Quantity       *int64         `db:"quantity"`
	Visibility     string         `db:"visibility"`
	Timestamp      time.Time      `db:"event_timestamp"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	ParentID       *string        `db:"parent_event_id"`
	ThreadID       *string        `db:"thread_id"`
	Featured       bool           `db:"is_featured"`
	Deleted        bool           `db:"is_deleted"`
	DeletedAt      *time.Time     `db:"deleted_at"`
	DeletionReason *string        `db:"deletion_reason"`
	Metadata       []byte         `db:"metadata"`
	Tags           pq.StringArray `db:"tags"`

	ActorName     sql.NullString `db:"actor_name"`
	ActorAvatar   sql.NullString `db:"actor_avatar"`
	SubjectName   sql.NullString `db:"subject_name"`
	SubjectAvatar sql.NullString `db:"subject_avatar"`
	TargetName    sql.NullString `db:"target_name"`
	TargetAvatar  sql.NullString `db:"target_avatar"`

	Likes    uint32 `db:"likes_count"`
	Shares   uint32 `db:"shares_count"`
	Comments uint32 `db:"comments_count"`

	Liked     bool `db:"liked"`
	Shared    bool `db:"shared"`
	Commented bool `db:"commented"`
}

type summaryDTO struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Avatar string `db:"avatar"`
}

// New creates new instance of pg.
func New(db *sql.DB) storage.Storage {
	return pg{
		ext: sqlx.NewDb(db, "postgres"),
	}
}

func (s pg) ListEvents(ctx context.Context, p *storage.ListEventsParams) ([]*storage.EventRow, uint64, error) {
	table, ok := sourceTables[p.Source]
	if !ok {
		return nil, 0, fmt.Errorf("unknown source %q", p.Source)
	}

	where, whereArgs := buildWhere(p)

	countQuery, countArgs, err := sqlx.In(fmt.Sprintf(`SELECT COUNT(*) FROM %s v %s`, table, where), whereArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to construct count query: %w", err)
	}

	var total uint64
	if err := sqlx.GetContext(ctx, s.ext, &total, s.ext.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count: %w", err)
	}

	if total == 0 || uint64(p.Limit) == 0 || p.Offset >= total {
		return []*storage.EventRow{}, total, nil
	}

	columns := rawColumns
	if p.Source.Enriched() {
		columns = enrichedColumns
	}

	flags, flagsArgs := viewerFlags(p.Viewer)

	order := "DESC"
	if p.Order == storage.AscendingOrder {
		order = "ASC"
	}

	args := append(flagsArgs, whereArgs...)
	args = append(args, p.Limit, p.Offset)

	query, args, err := sqlx.In(fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s v
		%s
		ORDER BY v.event_timestamp %s, v.id %s
		LIMIT ? OFFSET ?
	`, eventColumns, columns, flags, table, where, order, order), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to construct query: %w", err)
	}

	var dto []*eventDTO
	if err := sqlx.SelectContext(ctx, s.ext, &dto, s.ext.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*storage.EventRow, 0, len(dto))
	for _, v := range dto {
		out = append(out, toEventRow(v))
	}

	return out, total, nil
}

func (s pg) GetFollowees(ctx context.Context, follower string) ([]string, error) {
	var out []string

	if err := sqlx.SelectContext(ctx, s.ext, &out, `
			SELECT followee FROM follow
			WHERE follower = $1 AND unfollowed_at IS NULL
			ORDER BY followee
		`, follower,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return out, nil
}

func (s pg) GetProfiles(ctx context.Context, id ...string) ([]*entities.Summary, error) {
	return s.getSummaries(ctx, entities.ProfileKind, `
		SELECT address AS id, COALESCE(NULLIF(TRIM(first_name || ' ' || last_name), ''), address) AS name, avatar FROM profile
		WHERE address IN (?)
	`, id)
}

func (s pg) GetProjects(ctx context.Context, id ...string) ([]*entities.Summary, error) {
	return s.getSummaries(ctx, entities.ProjectKind, `
		SELECT id, title AS name, avatar FROM project
		WHERE id IN (?)
	`, id)
}

func (s pg) GetOrganizations(ctx context.Context, id ...string) ([]*entities.Summary, error) {
	return s.getSummaries(ctx, entities.OrganizationKind, `
		SELECT id, name, avatar FROM organization
		WHERE id IN (?)
	`, id)
}

func (s pg) getSummaries(ctx context.Context, kind entities.RefKind, q string, id []string) ([]*entities.Summary, error) {
	id = stringsUnique(id)
	if len(id) == 0 {
		return []*entities.Summary{}, nil
	}

	query, args, err := sqlx.In(q, id)
	if err != nil {
		return nil, fmt.Errorf("failed to construct IN clause: %w", err)
	}

	var dto []*summaryDTO
	if err := sqlx.SelectContext(ctx, s.ext, &dto, s.ext.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Summary, len(dto))
	for i, v := range dto {
		out[i] = &entities.Summary{
			Kind:   kind,
			ID:     v.ID,
			Name:   v.Name,
			Avatar: v.Avatar,
			URL:    SummaryURL(kind, v.ID),
		}
	}

	return out, nil
}

func (s pg) RefreshViews(ctx context.Context) error {
	// community view is built over enriched one, so the order matters.
	for _, v := range []string{"enriched_timeline_event", "community_timeline_event"} {
		if _, err := s.ext.ExecContext(ctx, fmt.Sprintf(`REFRESH MATERIALIZED VIEW CONCURRENTLY %s`, v)); err != nil {
			return fmt.Errorf("failed to refresh %s: %w", v, err)
		}
	}

	return nil
}

// SummaryURL returns relative url of entity page.
func SummaryURL(kind entities.RefKind, id string) string {
	switch kind {
	case entities.UserKind, entities.ProfileKind:
		return "/profiles/" + id
	case entities.ProjectKind:
		return "/projects/" + id
	case entities.OrganizationKind:
		return "/organizations/" + id
	default:
		return ""
	}
}

// nolint: gocyclo
func buildWhere(p *storage.ListEventsParams) (string, []interface{}) {
	conds := []string{"NOT v.is_deleted"}
	var args []interface{}

	if p.Source != storage.RawSource {
		// materialized views may lag behind soft deletion
		conds = append(conds, "NOT EXISTS (SELECT 1 FROM timeline_event d WHERE d.id = v.id AND d.is_deleted)")
	}

	if len(p.ActorIDs) > 0 {
		conds = append(conds, "v.actor_id IN (?)")
		args = append(args, p.ActorIDs)
	}

	if p.Subject != nil {
		conds = append(conds, "v.subject_type = ? AND v.subject_id = ?")
		args = append(args, string(p.Subject.Kind), p.Subject.ID)
	}

	if p.Profile != nil {
		conds = append(conds, "(v.actor_id = ? OR (v.subject_type = 'profile' AND v.subject_id = ?))")
		args = append(args, *p.Profile, *p.Profile)
	}

	if len(p.Visibility) > 0 {
		vis := make([]string, len(p.Visibility))
		for i, v := range p.Visibility {
			vis[i] = string(v)
		}

		conds = append(conds, "v.visibility IN (?)")
		args = append(args, vis)
	}

	if p.VisibleTo != nil {
		conds = append(conds, "(v.visibility = 'public' OR v.actor_id = ?)")
		args = append(args, *p.VisibleTo)
	}

	if len(p.EventTypes) > 0 {
		types := make([]string, len(p.EventTypes))
		for i, v := range p.EventTypes {
			types[i] = string(v)
		}
		conds = append(conds, "v.event_type IN (?)")
		args = append(args, types)
	}

	if p.From != nil {
		conds = append(conds, "v.event_timestamp >= ?")
		args = append(args, p.From.UTC())
	}

	if p.To != nil {
		conds = append(conds, "v.event_timestamp <= ?")
		args = append(args, p.To.UTC())
	}

	if len(p.Tags) > 0 {
		conds = append(conds, "v.tags && ?")
		args = append(args, pq.StringArray(p.Tags))
	}

	if len(p.Subjects) > 0 {
		conds = append(conds, "v.subject_id IN (?)")
		args = append(args, p.Subjects)
	}

	if p.ParentID != nil {
		conds = append(conds, "v.parent_event_id = ?")
		args = append(args, *p.ParentID)
	}

	if p.Search != nil {
		pattern := "%" + escapeLike(*p.Search) + "%"
		conds = append(conds, "(v.title ILIKE ? OR v.description ILIKE ?)")
		args = append(args, pattern, pattern)
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func viewerFlags(viewer *string) (string, []interface{}) {
	if viewer == nil {
		return "FALSE AS liked, FALSE AS shared, FALSE AS commented", nil
	}

	return `
		EXISTS (SELECT 1 FROM timeline_like l WHERE l.event_id = v.id AND l.user_id = ?) AS liked,
		EXISTS (SELECT 1 FROM timeline_share s WHERE s.event_id = v.id AND s.user_id = ?) AS shared,
		EXISTS (
			SELECT 1 FROM timeline_event c
			WHERE c.parent_event_id = v.id AND c.actor_id = ? AND NOT c.is_deleted
		) AS commented`, []interface{}{*viewer, *viewer, *viewer}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func toEventRow(v *eventDTO) *storage.EventRow {
	e := entities.Event{
		ID:             v.ID,
		Type:           entities.EventType(v.Type),
		Subtype:        v.Subtype,
		Actor:          entities.Ref{Kind: entities.RefKind(v.ActorType), ID: v.ActorID},
		Subject:        entities.NewRef(v.SubjectType.String, v.SubjectID.String),
		Target:         entities.NewRef(v.TargetType.String, v.TargetID.String),
		Title:          v.Title,
		Description:    v.Description,
		Content:        v.Content,
		AmountSats:     v.AmountSats,
		AmountBTC:      v.AmountBTC,
		Quantity:       v.Quantity,
		Visibility:     entities.Visibility(v.Visibility),
		Timestamp:      v.Timestamp,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		ParentID:       v.ParentID,
		ThreadID:       v.ThreadID,
		Featured:       v.Featured,
		Deleted:        v.Deleted,
		DeletedAt:      v.DeletedAt,
		DeletionReason: v.DeletionReason,
		Tags:           []string(v.Tags),
	}

	if len(v.Metadata) > 0 {
		if err := json.Unmarshal(v.Metadata, &e.Metadata); err != nil {
			log.WithError(err).WithField("id", v.ID).Warn("failed to unmarshal event metadata")
		}
	}

	return &storage.EventRow{
		Event:          e,
		ActorSummary:   toSummary(&e.Actor, v.ActorName, v.ActorAvatar),
		SubjectSummary: toSummary(e.Subject, v.SubjectName, v.SubjectAvatar),
		TargetSummary:  toSummary(e.Target, v.TargetName, v.TargetAvatar),
		Interactions: entities.Interactions{
			Likes:     v.Likes,
			Shares:    v.Shares,
			Comments:  v.Comments,
			Liked:     v.Liked,
			Shared:    v.Shared,
			Commented: v.Commented,
		},
	}
}

func toSummary(ref *entities.Ref, name, avatar sql.NullString) *entities.Summary {
	if ref == nil || !name.Valid {
		return nil
	}

	return &entities.Summary{
		Kind:   ref.Kind,
		ID:     ref.ID,
		Name:   name.String,
		Avatar: avatar.String,
		URL:    SummaryURL(ref.Kind, ref.ID),
	}
}

func stringsUnique(s []string) []string {
	m := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))

	for _, v := range s {
		if _, ok := m[v]; !ok {
			m[v] = struct{}{}
			out = append(out, v)
		}
	}

	return out
}
