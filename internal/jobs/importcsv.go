package jobs

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/merchly/console-backend/internal/logger"
	"github.com/merchly/console-backend/internal/repos"
	"github.com/merchly/console-backend/internal/services"
	"github.com/merchly/console-backend/internal/types"
)

const importBatchSize = 100

// ProductCSVHandler turns an uploaded product CSV into product rows. Rows
// whose SKU already exists for the merchant are skipped, bad rows are counted
// as failed without aborting the rest of the file.
type ProductCSVHandler struct {
	log         *logger.Logger
	productRepo repos.ProductRepo
}

func NewProductCSVHandler(baseLog *logger.Logger, productRepo repos.ProductRepo) *ProductCSVHandler {
	return &ProductCSVHandler{
		log:         baseLog.With("handler", "ProductCSVHandler"),
		productRepo: productRepo,
	}
}

func (h *ProductCSVHandler) Type() string { return services.JobTypeProductCSVImport }

func (h *ProductCSVHandler) Run(jc *Context) error {
	var payload services.ProductCSVPayload
	if err := json.Unmarshal(jc.Job.Payload, &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if payload.CSV == "" {
		return fmt.Errorf("payload has no csv data")
	}

	rows, parseFailed, err := parseProductCSV(strings.NewReader(payload.CSV))
	if err != nil {
		return err
	}
	total := len(rows) + parseFailed
	jc.Progress(total, 0, parseFailed)

	// Parsing a large upload moves no counters, so keep the claim fresh
	// before the SKU lookup round trip.
	jc.Heartbeat()

	existing, err := h.existingSKUs(jc, rows)
	if err != nil {
		return err
	}

	var batch []*types.Product
	var batches [][]*types.Product
	seen := map[string]bool{}
	skipped := 0
	for _, row := range rows {
		if row.SKU != "" && (existing[row.SKU] || seen[row.SKU]) {
			skipped++
			continue
		}
		if row.SKU != "" {
			seen[row.SKU] = true
		}
		batch = append(batch, row.toProduct(jc.Job.MerchantID))
		if len(batch) == importBatchSize {
			batches = append(batches, batch)
			batch = nil
		}
	}
	if len(batch) > 0 {
		batches = append(batches, batch)
	}

	var created, failed atomic.Int64
	failed.Add(int64(parseFailed))
	g, ctx := errgroup.WithContext(jc.Ctx)
	g.SetLimit(4)
	for _, b := range batches {
		b := b
		g.Go(func() error {
			if _, err := h.productRepo.Create(ctx, nil, b); err != nil {
				h.log.Warn("product batch insert failed", "job_id", jc.Job.ID, "rows", len(b), "error", err)
				failed.Add(int64(len(b)))
				return nil
			}
			created.Add(int64(len(b)))
			jc.Progress(total, int(created.Load()), int(failed.Load()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	jc.Progress(total, int(created.Load()), int(failed.Load()))
	h.log.Info("product csv import done",
		"job_id", jc.Job.ID,
		"total", total,
		"created", created.Load(),
		"failed", failed.Load(),
		"skipped_existing", skipped,
	)
	return nil
}

func (h *ProductCSVHandler) existingSKUs(jc *Context, rows []productRow) (map[string]bool, error) {
	var skus []string
	for _, row := range rows {
		if row.SKU != "" {
			skus = append(skus, row.SKU)
		}
	}
	existing := map[string]bool{}
	if len(skus) == 0 {
		return existing, nil
	}
	found, err := h.productRepo.GetBySKUs(jc.Ctx, nil, jc.Job.MerchantID, skus)
	if err != nil {
		return nil, fmt.Errorf("check existing skus: %w", err)
	}
	for _, p := range found {
		existing[p.SKU] = true
	}
	return existing, nil
}

type productRow struct {
	Name        string
	SKU         string
	Description string
	PriceCents  int64
	Currency    string
	Images      []string
	Status      string
}

func (row productRow) toProduct(merchantID uuid.UUID) *types.Product {
	currency := row.Currency
	if currency == "" {
		currency = "USD"
	}
	status := row.Status
	if status == "" {
		status = "draft"
	}
	images := row.Images
	if images == nil {
		images = []string{}
	}
	raw, _ := json.Marshal(images)
	return &types.Product{
		ID:          uuid.New(),
		MerchantID:  merchantID,
		Name:        row.Name,
		SKU:         row.SKU,
		Description: row.Description,
		PriceCents:  row.PriceCents,
		Currency:    currency,
		Images:      datatypes.JSON(raw),
		Status:      status,
	}
}

// parseProductCSV reads a header row then data rows. Recognized headers are
// name, sku, description, price_cents, currency, images (pipe separated) and
// status. Rows with no name or a malformed price count as failed.
func parseProductCSV(r io.Reader) ([]productRow, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, fmt.Errorf("csv is empty")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, 0, fmt.Errorf("csv header has no name column")
	}

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []productRow
	failed := 0
	for {
		record, rErr := reader.Read()
		if rErr == io.EOF {
			break
		}
		if rErr != nil {
			failed++
			continue
		}
		name := field(record, "name")
		if name == "" {
			failed++
			continue
		}
		row := productRow{
			Name:        name,
			SKU:         field(record, "sku"),
			Description: field(record, "description"),
			Currency:    field(record, "currency"),
			Status:      field(record, "status"),
		}
		if raw := field(record, "price_cents"); raw != "" {
			cents, pErr := strconv.ParseInt(raw, 10, 64)
			if pErr != nil || cents < 0 {
				failed++
				continue
			}
			row.PriceCents = cents
		}
		if raw := field(record, "images"); raw != "" {
			for _, img := range strings.Split(raw, "|") {
				if img = strings.TrimSpace(img); img != "" {
					row.Images = append(row.Images, img)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, failed, nil
}
