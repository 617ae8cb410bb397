// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Models the users/chats/posts key-spaces as tables with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite. A chat id or user id (a u64
// that may have its high bit set) is stored in its int64 bit pattern;
// SQLite's INTEGER column is a 64-bit two's-complement value regardless of
// how the application interprets it, so the round trip through
// int64(id)/uint64(v) is exact.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if necessary) a SQLite database at path
// and ensures its schema exists. Parent directories are created as needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("sqlite store initialized", "path", path)
	return s, nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	short_name TEXT NOT NULL,
	created INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS chats (
	id INTEGER PRIMARY KEY,
	permanent INTEGER NOT NULL,
	description TEXT NOT NULL,
	created INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS chat_members (
	chat_id INTEGER NOT NULL REFERENCES chats(id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (chat_id, user_id)
);
CREATE INDEX IF NOT EXISTS idx_chat_members_chat ON chat_members(chat_id, position);
CREATE TABLE IF NOT EXISTS posts (
	chat_id INTEGER NOT NULL,
	seq INTEGER NOT NULL,
	id INTEGER NOT NULL,
	user_id INTEGER NOT NULL,
	text TEXT NOT NULL,
	attachments BLOB,
	created INTEGER NOT NULL,
	PRIMARY KEY (chat_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_posts_chat_seq ON posts(chat_id, seq);
`

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(schemaSQL)
	return err
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing sqlite store")
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)

// ReadUser returns ErrNotFound if id has no record.
func (s *SQLiteStore) ReadUser(ctx context.Context, id uint64) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, short_name, created FROM users WHERE id = ?`, int64(id))
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var rawID int64
	if err := row.Scan(&rawID, &u.Name, &u.ShortName, &u.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.ID = uint64(rawID)
	return &u, nil
}

// WriteUser inserts or overwrites the user record.
func (s *SQLiteStore) WriteUser(ctx context.Context, u *User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, short_name, created) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, short_name = excluded.short_name
	`, int64(u.ID), u.Name, u.ShortName, u.Created)
	if err != nil {
		return fmt.Errorf("writing user: %w", err)
	}
	return nil
}

// ReadAllUsers returns every registered user, in no particular order.
func (s *SQLiteStore) ReadAllUsers(ctx context.Context) ([]*User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, short_name, created FROM users`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []*User
	for rows.Next() {
		var u User
		var rawID int64
		if err := rows.Scan(&rawID, &u.Name, &u.ShortName, &u.Created); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		u.ID = uint64(rawID)
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}
	return users, nil
}

// RemoveUser deletes the user and purges it from every chat's member list
// in a single transaction.
func (s *SQLiteStore) RemoveUser(ctx context.Context, id uint64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_members WHERE user_id = ?`, int64(id)); err != nil {
		return fmt.Errorf("purging user from chats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing user removal: %w", err)
	}
	s.logger.Debug("removed user", "user_id", id)
	return nil
}

// ReadChat returns ErrNotFound if id has no record.
func (s *SQLiteStore) ReadChat(ctx context.Context, id uint64) (*Chat, error) {
	return s.readChatTx(ctx, s.db, id)
}

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) readChatTx(ctx context.Context, q queryRower, id uint64) (*Chat, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, permanent, description, created FROM chats WHERE id = ?`, int64(id))

	var c Chat
	var rawID int64
	var permanent int
	if err := row.Scan(&rawID, &permanent, &c.Description, &c.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning chat: %w", err)
	}
	c.ID = uint64(rawID)
	c.Permanent = permanent != 0

	members, err := s.readMembersTx(ctx, q, id)
	if err != nil {
		return nil, err
	}
	c.Users = members
	return &c, nil
}

func (s *SQLiteStore) readMembersTx(ctx context.Context, q queryRower, chatID uint64) ([]uint64, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT user_id FROM chat_members WHERE chat_id = ? ORDER BY position`, int64(chatID))
	if err != nil {
		return nil, fmt.Errorf("querying chat members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var members []uint64
	for rows.Next() {
		var rawUserID int64
		if err := rows.Scan(&rawUserID); err != nil {
			return nil, fmt.Errorf("scanning chat member: %w", err)
		}
		members = append(members, uint64(rawUserID))
	}
	return members, rows.Err()
}

// WriteChat inserts or overwrites the chat record, replacing its member
// list wholesale.
func (s *SQLiteStore) WriteChat(ctx context.Context, c *Chat) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.writeChatTx(ctx, tx, c); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing chat write: %w", err)
	}
	return nil
}

func (s *SQLiteStore) writeChatTx(ctx context.Context, tx *sql.Tx, c *Chat) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO chats (id, permanent, description, created) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET permanent = excluded.permanent, description = excluded.description
	`, int64(c.ID), boolToInt(c.Permanent), c.Description, c.Created)
	if err != nil {
		return fmt.Errorf("writing chat: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_members WHERE chat_id = ?`, int64(c.ID)); err != nil {
		return fmt.Errorf("clearing chat members: %w", err)
	}
	for i, userID := range c.Users {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chat_members (chat_id, user_id, position) VALUES (?, ?, ?)`,
			int64(c.ID), int64(userID), i); err != nil {
			return fmt.Errorf("writing chat member: %w", err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ReadAllChats returns every chat, in no particular order.
func (s *SQLiteStore) ReadAllChats(ctx context.Context) ([]*Chat, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM chats`)
	if err != nil {
		return nil, fmt.Errorf("querying chats: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scanning chat id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterating chat ids: %w", err)
	}
	_ = rows.Close()

	chats := make([]*Chat, 0, len(ids))
	for _, id := range ids {
		c, err := s.readChatTx(ctx, s.db, uint64(id))
		if err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, nil
}

// RemoveChat deletes the chat, its member list, and its entire post
// sub-space in one transaction.
func (s *SQLiteStore) RemoveChat(ctx context.Context, id uint64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM chats WHERE id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("deleting chat: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_members WHERE chat_id = ?`, int64(id)); err != nil {
		return fmt.Errorf("deleting chat members: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE chat_id = ?`, int64(id)); err != nil {
		return fmt.Errorf("deleting chat posts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing chat removal: %w", err)
	}
	s.logger.Debug("removed chat", "chat_id", id)
	return nil
}

// UpdateChat runs updater against the chat for id inside a single
// transaction, so concurrent updates on the same id serialize on SQLite's
// write lock.
func (s *SQLiteStore) UpdateChat(ctx context.Context, id uint64, updater ChatUpdater) (*Chat, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := s.readChatTx(ctx, tx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !updater(current) {
		return current, nil
	}

	if err := s.writeChatTx(ctx, tx, current); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing chat update: %w", err)
	}
	return current, nil
}

// WritePost appends a post to its chat's sequence, assigning the next
// monotone position for that chat.
func (s *SQLiteStore) WritePost(ctx context.Context, p *Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var maxSeq sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT MAX(seq) FROM posts WHERE chat_id = ?`, int64(p.ChatID)).Scan(&maxSeq)
	if err != nil {
		return fmt.Errorf("reading current post sequence: %w", err)
	}
	nextSeq := int64(0)
	if maxSeq.Valid {
		nextSeq = maxSeq.Int64 + 1
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO posts (chat_id, seq, id, user_id, text, attachments, created)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, int64(p.ChatID), nextSeq, int64(p.ID), int64(p.UserID), p.Text, p.Attachments, p.Created)
	if err != nil {
		return fmt.Errorf("writing post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing post write: %w", err)
	}
	return nil
}

// ChatPostsCount returns the number of posts stored for chatID. A missing
// chat has zero posts, not an error.
func (s *SQLiteStore) ChatPostsCount(ctx context.Context, chatID uint64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE chat_id = ?`, int64(chatID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}
	return count, nil
}

// ReadChatPosts returns up to count posts starting at insertion index
// idxFrom, in insertion order. A missing chat or an out-of-range idxFrom
// yields an empty slice, never an error.
func (s *SQLiteStore) ReadChatPosts(ctx context.Context, chatID uint64, idxFrom, count int) ([]*Post, error) {
	if count <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, text, attachments, created FROM posts
		WHERE chat_id = ? ORDER BY seq LIMIT ? OFFSET ?
	`, int64(chatID), count, idxFrom)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var posts []*Post
	for rows.Next() {
		var p Post
		var rawID, rawUserID int64
		if err := rows.Scan(&rawID, &rawUserID, &p.Text, &p.Attachments, &p.Created); err != nil {
			return nil, fmt.Errorf("scanning post row: %w", err)
		}
		p.ID = uint64(rawID)
		p.UserID = uint64(rawUserID)
		p.ChatID = chatID
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating post rows: %w", err)
	}
	return posts, nil
}
