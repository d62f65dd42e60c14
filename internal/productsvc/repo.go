package productsvc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luxefashion/go-storefront/internal/catalog"
	"github.com/luxefashion/go-storefront/internal/orders"
	"github.com/luxefashion/go-storefront/internal/price"
)

var ErrNotFound = errors.New("product not found")

type Repo struct{ DB *pgxpool.Pool }

// Migrate creates the service tables on startup.
func (r *Repo) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			category        TEXT NOT NULL DEFAULT '',
			price_cents     BIGINT NOT NULL,
			old_price_cents BIGINT NOT NULL DEFAULT 0,
			images          TEXT[],
			badge           TEXT NOT NULL DEFAULT '',
			rating          DOUBLE PRECISION NOT NULL DEFAULT 0,
			colors          TEXT[],
			sizes           TEXT[],
			description     TEXT NOT NULL DEFAULT '',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id                 TEXT PRIMARY KEY,
			user_id            TEXT NOT NULL DEFAULT '',
			customer_name      TEXT NOT NULL,
			customer_phone     TEXT NOT NULL,
			customer_address   TEXT NOT NULL,
			customer_comments  TEXT NOT NULL DEFAULT '',
			subtotal_cents     BIGINT NOT NULL,
			delivery_fee_cents BIGINT NOT NULL,
			total_cents        BIGINT NOT NULL,
			created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id          BIGSERIAL PRIMARY KEY,
			order_id    TEXT NOT NULL REFERENCES orders(id),
			product_id  TEXT NOT NULL,
			name        TEXT NOT NULL,
			price_cents BIGINT NOT NULL,
			color       TEXT NOT NULL DEFAULT '',
			size        TEXT NOT NULL DEFAULT '',
			qty         INT NOT NULL
		)`,
	}
	for _, q := range stmts {
		if _, err := r.DB.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// Seed loads the bundled static catalog when the products table is empty,
// so a fresh service serves the same list the storefront would fall back to.
func (r *Repo) Seed(ctx context.Context) error {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, p := range catalog.StaticProducts() {
		if _, err := r.insert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

const productCols = `id, name, category, price_cents, old_price_cents, images,
	badge, rating, colors, sizes, description, created_at, updated_at`

func scanProduct(row pgx.Row) (catalog.Product, error) {
	var p catalog.Product
	var priceCents, oldPriceCents int64
	err := row.Scan(&p.ID, &p.Name, &p.Category, &priceCents, &oldPriceCents,
		&p.Images, &p.Badge, &p.Rating, &p.Colors, &p.Sizes, &p.Description,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return catalog.Product{}, err
	}
	p.Price = price.Cents(priceCents)
	p.OldPrice = price.Cents(oldPriceCents)
	return p, nil
}

func (r *Repo) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []catalog.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id string) (catalog.Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Product{}, ErrNotFound
	}
	return p, err
}

// Related returns up to four other products from the same category.
func (r *Repo) Related(ctx context.Context, id string) ([]catalog.Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+productCols+` FROM products
		WHERE category = (SELECT category FROM products WHERE id=$1) AND id <> $1
		ORDER BY rating DESC LIMIT 4`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []catalog.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) insert(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = p.CreatedAt
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products (id, name, category, price_cents, old_price_cents,
			images, badge, rating, colors, sizes, description, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.Name, p.Category, int64(p.Price), int64(p.OldPrice),
		p.Images, p.Badge, p.Rating, p.Colors, p.Sizes, p.Description,
		p.CreatedAt, p.UpdatedAt)
	return p, err
}

func (r *Repo) Create(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	return r.insert(ctx, p)
}

func (r *Repo) Update(ctx context.Context, id string, p catalog.Product) (catalog.Product, error) {
	p.ID = id
	p.UpdatedAt = time.Now().UTC()
	tag, err := r.DB.Exec(ctx, `
		UPDATE products SET name=$2, category=$3, price_cents=$4, old_price_cents=$5,
			images=$6, badge=$7, rating=$8, colors=$9, sizes=$10, description=$11, updated_at=$12
		WHERE id=$1`,
		id, p.Name, p.Category, int64(p.Price), int64(p.OldPrice),
		p.Images, p.Badge, p.Rating, p.Colors, p.Sizes, p.Description, p.UpdatedAt)
	if err != nil {
		return catalog.Product{}, err
	}
	if tag.RowsAffected() == 0 {
		return catalog.Product{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateOrder stores a checkout payload and returns the new order id.
func (r *Repo) CreateOrder(ctx context.Context, userID string, o orders.Order) (string, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderID := uuid.NewString()
	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, customer_name, customer_phone, customer_address,
			customer_comments, subtotal_cents, delivery_fee_cents, total_cents)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		orderID, userID, o.Customer.Name, o.Customer.Phone, o.Customer.Address,
		o.Customer.Comments, int64(o.Totals.Subtotal), int64(o.Totals.DeliveryFee),
		int64(o.Totals.Total))
	if err != nil {
		return "", err
	}

	for _, it := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, name, price_cents, color, size, qty)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			orderID, it.ProductID, it.Name, int64(it.Price), it.SelectedColor, it.SelectedSize, it.Quantity)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return orderID, nil
}
