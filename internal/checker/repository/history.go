package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// History Repository
// ============================================================

// Repository хранит историю проверок вместе с артефактами (исходные
// чертежи, аннотированная копия, xlsx-отчет) в SQLite. Запись идет через
// единственное соединение, так что конкурентные запросы сериализуются.
type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// HistoryRecord — одна проверка в истории (без тел файлов).
type HistoryRecord struct {
	ID            int64  `json:"id"`
	CheckType     string `json:"check_type"`
	ReferenceName string `json:"reference_name"`
	ClientName    string `json:"client_name"`
	ModifiedName  string `json:"modified_name"`
	ExcelName     string `json:"excel_name"`
	CreatedAt     string `json:"created_at"`
}

// Artifacts — тела файлов, привязанные к записи истории.
type Artifacts struct {
	Reference []byte
	Client    []byte
	Modified  []byte
	Excel     []byte
}

var ErrNotFound = errors.New("history record not found")

// Init запускает миграции.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// Add сохраняет запись проверки и возвращает ее id.
func (r *Repository) Add(ctx context.Context, rec HistoryRecord, files Artifacts) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO history (check_type, reference_name, client_name, modified_name, excel_name,
                             reference_data, client_data, modified_data, excel_data)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, rec.CheckType, rec.ReferenceName, rec.ClientName, rec.ModifiedName, rec.ExcelName,
		files.Reference, files.Client, files.Modified, files.Excel)
	if err != nil {
		return 0, fmt.Errorf("insert history: %w", err)
	}
	return res.LastInsertId()
}

// List возвращает записи истории, новые первыми.
func (r *Repository) List(ctx context.Context) ([]HistoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, check_type, reference_name, client_name, modified_name, excel_name, created_at
        FROM history
        ORDER BY id DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []HistoryRecord
	for rows.Next() {
		var rec HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.CheckType, &rec.ReferenceName, &rec.ClientName,
			&rec.ModifiedName, &rec.ExcelName, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// FileContent отдает тело артефакта и имя файла для скачивания.
// kind: reference | client | modified | excel.
func (r *Repository) FileContent(ctx context.Context, id int64, kind string) ([]byte, string, error) {
	var dataColumn, nameColumn string
	switch kind {
	case "reference":
		dataColumn, nameColumn = "reference_data", "reference_name"
	case "client":
		dataColumn, nameColumn = "client_data", "client_name"
	case "modified":
		dataColumn, nameColumn = "modified_data", "modified_name"
	case "excel":
		dataColumn, nameColumn = "excel_data", "excel_name"
	default:
		return nil, "", fmt.Errorf("unknown artifact kind %q", kind)
	}

	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s, %s FROM history WHERE id = ?", dataColumn, nameColumn), id)

	var data []byte
	var name string
	if err := row.Scan(&data, &name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", ErrNotFound
	}
	return data, name, nil
}

// Delete удаляет одну запись истории.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM history WHERE id = ?", id)
	return err
}

// Clear очищает историю целиком.
func (r *Repository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM history")
	return err
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
