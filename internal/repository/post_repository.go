package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Himselfzw/ingrid/internal/models"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const postColumns = `p.id, p.title, p.content, p.category_id, p.author, p.image, p.created_at, c.name`

func scanPost(row pgx.Row) (models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.CategoryID,
		&post.Author,
		&post.Image,
		&post.CreatedAt,
		&post.CategoryName,
	)
	return post, err
}

func (r *PostRepository) Create(ctx context.Context, post models.Post) error {
	const query = `
		INSERT INTO posts (id, title, content, category_id, author, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	author := post.Author
	if author == "" {
		author = "Admin"
	}
	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.CategoryID,
		author,
		post.Image,
	)
	return err
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (models.Post, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`
	post, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}
		return models.Post{}, err
	}
	return post, nil
}

func (r *PostRepository) List(ctx context.Context, limit int) ([]models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Update(ctx context.Context, post models.Post) error {
	const query = `
		UPDATE posts
		SET title = $2,
		    content = $3,
		    category_id = $4,
		    image = COALESCE($5, image)
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.CategoryID,
		post.Image,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM posts WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}
