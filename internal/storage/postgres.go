package storage

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hackclub/shipwrecked-sub000/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

// --- ProjectRepository ---
func (p *PostgresStorage) SaveProject(ctx context.Context, project *internal.Project) error {
	links, err := json.Marshal(project.HackatimeLinks)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `INSERT INTO projects (project_id, user_id, name, shipped, viral, raw_hours, hours_override, hackatime_links, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		project.ProjectID, project.UserID, project.Name, project.Shipped, project.Viral, project.RawHours, project.HoursOverride, links, project.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert project: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) UpdateProject(ctx context.Context, project *internal.Project) error {
	links, err := json.Marshal(project.HackatimeLinks)
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx, `UPDATE projects SET name = $2, shipped = $3, viral = $4, raw_hours = $5, hours_override = $6, hackatime_links = $7 WHERE project_id = $1`,
		project.ProjectID, project.Name, project.Shipped, project.Viral, project.RawHours, project.HoursOverride, links)
	if err != nil {
		p.logger.Errorf("failed to update project: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) GetProject(ctx context.Context, projectID string) (*internal.Project, error) {
	row := p.pool.QueryRow(ctx, `SELECT project_id, user_id, name, shipped, viral, raw_hours, hours_override, hackatime_links, created_at FROM projects WHERE project_id = $1`, projectID)
	project, err := scanProject(row)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		p.logger.Errorf("failed to get project: %v", err)
		return nil, err
	}
	return project, nil
}

func (p *PostgresStorage) ListProjects(ctx context.Context, userID string) ([]internal.Project, error) {
	rows, err := p.pool.Query(ctx, `SELECT project_id, user_id, name, shipped, viral, raw_hours, hours_override, hackatime_links, created_at FROM projects WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query projects: %v", err)
		return nil, err
	}
	defer rows.Close()

	var projects []internal.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			p.logger.Errorf("failed to scan project: %v", err)
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func scanProject(row pgx.Row) (*internal.Project, error) {
	var project internal.Project
	var links []byte
	err := row.Scan(&project.ProjectID, &project.UserID, &project.Name, &project.Shipped, &project.Viral, &project.RawHours, &project.HoursOverride, &links, &project.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(links) > 0 {
		if err := json.Unmarshal(links, &project.HackatimeLinks); err != nil {
			return nil, err
		}
	}
	return &project, nil
}

// --- UserRepository ---
func (p *PostgresStorage) GetUser(ctx context.Context, userID string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, token, name, role, purchased_progress_hours, total_shells_spent, admin_shell_adjustment, created_at FROM users WHERE id = $1`, userID)
	return p.scanUser(row)
}

func (p *PostgresStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, token, name, role, purchased_progress_hours, total_shells_spent, admin_shell_adjustment, created_at FROM users WHERE token = $1`, token)
	return p.scanUser(row)
}

func (p *PostgresStorage) scanUser(row pgx.Row) (*internal.User, error) {
	var u internal.User
	err := row.Scan(&u.ID, &u.Token, &u.Name, &u.Role, &u.PurchasedProgressHours, &u.TotalShellsSpent, &u.AdminShellAdjustment, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		p.logger.Errorf("user not found: %v", err)
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, token, name, role, purchased_progress_hours, total_shells_spent, admin_shell_adjustment, created_at FROM users ORDER BY created_at`)
	if err != nil {
		p.logger.Errorf("failed to query users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []internal.User
	for rows.Next() {
		var u internal.User
		if err := rows.Scan(&u.ID, &u.Token, &u.Name, &u.Role, &u.PurchasedProgressHours, &u.TotalShellsSpent, &u.AdminShellAdjustment, &u.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (p *PostgresStorage) UpdateUser(ctx context.Context, user *internal.User) error {
	tag, err := p.pool.Exec(ctx, `UPDATE users SET token = $2, name = $3, role = $4, purchased_progress_hours = $5, total_shells_spent = $6, admin_shell_adjustment = $7 WHERE id = $1`,
		user.ID, user.Token, user.Name, user.Role, user.PurchasedProgressHours, user.TotalShellsSpent, user.AdminShellAdjustment)
	if err != nil {
		p.logger.Errorf("failed to update user: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- OrderRepository ---
func (p *PostgresStorage) SaveOrder(ctx context.Context, order *internal.ShopOrder) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO shop_orders (id, user_id, item_name, shell_cost, progress_hours, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		order.ID, order.UserID, order.ItemName, order.ShellCost, order.ProgressHours, order.Status, order.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert order: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListOrders(ctx context.Context, userID string) ([]internal.ShopOrder, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, user_id, item_name, shell_cost, progress_hours, status, created_at FROM shop_orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query orders: %v", err)
		return nil, err
	}
	defer rows.Close()

	var orders []internal.ShopOrder
	for rows.Next() {
		var o internal.ShopOrder
		if err := rows.Scan(&o.ID, &o.UserID, &o.ItemName, &o.ShellCost, &o.ProgressHours, &o.Status, &o.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan order: %v", err)
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// --- Compile-time assertions ---
var _ ProjectRepository = (*PostgresStorage)(nil)
var _ UserRepository = (*PostgresStorage)(nil)
var _ OrderRepository = (*PostgresStorage)(nil)
