// Package warehousev1 defines the wire messages and gRPC service descriptors of
// the warehouse API. Messages travel as JSON (see pkg/grpcjson); dates are
// "2006-01-02" or RFC 3339 strings and money is a decimal string.
package warehousev1

import "time"

// --- Catalog ---

type Product struct {
	Id        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	UnitPrice string    `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	UnitPrice string `json:"unit_price"`
}

type UpdateProductRequest struct {
	Id        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	UnitPrice string `json:"unit_price"`
}

type GetProductRequest struct {
	Id string `json:"id"`
}

type DeleteProductRequest struct {
	Id string `json:"id"`
}

type BulkDeleteProductsRequest struct {
	Ids []string `json:"ids"`
}

type BulkDeleteProductsResponse struct {
	Deleted int32 `json:"deleted"`
}

type ProductResponse struct {
	Product *Product `json:"product"`
}

type ListProductsRequest struct {
	Query     string `json:"query"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
	Page      int32  `json:"page"`
	PageSize  int32  `json:"page_size"`
}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
	Total    int32      `json:"total"`
	Page     int32      `json:"page"`
	PageSize int32      `json:"page_size"`
}

// ImportRequest carries an uploaded spreadsheet. FileName selects the parser by extension.
type ImportRequest struct {
	FileName string `json:"file_name"`
	Content  []byte `json:"content"`
}

type ImportResponse struct {
	Imported int32  `json:"imported"`
	Skipped  int32  `json:"skipped"`
	Message  string `json:"message"`
}

// --- Inbound ---

type InboundEntry struct {
	Id          string    `json:"id"`
	ProductId   string    `json:"product_id"`
	ProductCode string    `json:"product_code"`
	ProductName string    `json:"product_name"`
	Quantity    int32     `json:"quantity"`
	Date        string    `json:"date"`
	Period      string    `json:"period"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateInboundRequest struct {
	ProductId string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	Date      string `json:"date"`
}

type UpdateInboundRequest struct {
	Id        string `json:"id"`
	ProductId string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	Date      string `json:"date"`
}

type DeleteInboundRequest struct {
	Id string `json:"id"`
}

type InboundResponse struct {
	Entry *InboundEntry `json:"entry"`
}

type ListInboundRequest struct {
	ProductId string `json:"product_id"`
	Year      int32  `json:"year"`
	Month     int32  `json:"month"`
}

type ListInboundResponse struct {
	Entries []*InboundEntry `json:"entries"`
}

// --- Outbound ---

type OutboundItem struct {
	Id          string `json:"id,omitempty"`
	ProductId   string `json:"product_id"`
	ProductCode string `json:"product_code,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Quantity    int32  `json:"quantity"`
}

type OutboundTransaction struct {
	Id            string          `json:"id"`
	Recipient     string          `json:"recipient"`
	Address       string          `json:"address"`
	Date          string          `json:"date"`
	Items         []*OutboundItem `json:"items"`
	TotalQuantity int32           `json:"total_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type CreateOutboundRequest struct {
	Recipient string          `json:"recipient"`
	Address   string          `json:"address"`
	Date      string          `json:"date"`
	Items     []*OutboundItem `json:"items"`
}

type UpdateOutboundRequest struct {
	Id        string          `json:"id"`
	Recipient string          `json:"recipient"`
	Address   string          `json:"address"`
	Date      string          `json:"date"`
	Items     []*OutboundItem `json:"items"`
}

type GetOutboundRequest struct {
	Id string `json:"id"`
}

type DeleteOutboundRequest struct {
	Id string `json:"id"`
}

type OutboundResponse struct {
	Transaction *OutboundTransaction `json:"transaction"`
}

type ListOutboundRequest struct {
	Query    string `json:"query"`
	Year     int32  `json:"year"`
	Page     int32  `json:"page"`
	PageSize int32  `json:"page_size"`
}

type ListOutboundResponse struct {
	Transactions []*OutboundTransaction `json:"transactions"`
	Total        int32                  `json:"total"`
}

type RenderHandoverRequest struct {
	Id string `json:"id"`
}

type RenderHandoverResponse struct {
	Html string `json:"html"`
}

// --- Inventory ---

type StockLevel struct {
	ProductId string `json:"product_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Stock     int32  `json:"stock"`
	UnitPrice string `json:"unit_price"`
	Value     string `json:"value"`
}

type GetStockRequest struct {
	ProductId string `json:"product_id"`
}

type StockResponse struct {
	Level *StockLevel `json:"level"`
}

type ListStockRequest struct {
	Query  string `json:"query"`
	SortBy string `json:"sort_by"`
}

type ListStockResponse struct {
	Levels     []*StockLevel `json:"levels"`
	TotalValue string        `json:"total_value"`
}

// ValidateOutboundRequest checks items without writing. TransactionId names the
// stored transaction being edited, if any.
type ValidateOutboundRequest struct {
	TransactionId string          `json:"transaction_id"`
	Items         []*OutboundItem `json:"items"`
}

type ValidateOutboundResponse struct {
	Ok        bool   `json:"ok"`
	ProductId string `json:"product_id,omitempty"`
	Requested int32  `json:"requested,omitempty"`
	Available int32  `json:"available,omitempty"`
	Message   string `json:"message,omitempty"`
}

// --- Reports ---

type RegionDistributionRequest struct {
	Year int32 `json:"year"`
}

type RegionBucket struct {
	Region        string `json:"region"`
	Transactions  int32  `json:"transactions"`
	TotalQuantity int32  `json:"total_quantity"`
}

type RegionDistributionResponse struct {
	Regions []*RegionBucket `json:"regions"`
}

type MonthlyMatrixRequest struct {
	Year int32 `json:"year"`
}

type MonthlyRow struct {
	ProductId string  `json:"product_id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Months    []int32 `json:"months"`
	Total     int32   `json:"total"`
}

type MonthlyMatrixResponse struct {
	Year int32         `json:"year"`
	Rows []*MonthlyRow `json:"rows"`
}

// ExportReportRequest names a report (stock, inbound, outbound, region,
// monthly) and a format (pdf, xlsx, csv).
type ExportReportRequest struct {
	Report string `json:"report"`
	Format string `json:"format"`
	Year   int32  `json:"year"`
}

type ExportReportResponse struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"content"`
}

// --- Settings ---

type Branding struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	LogoUrl     string `json:"logo_url"`
}

type SyncConfig struct {
	Enabled  bool   `json:"enabled"`
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	Db       int32  `json:"db"`
}

type Settings struct {
	Branding         *Branding   `json:"branding"`
	Theme            string      `json:"theme"`
	AdminName        string      `json:"admin_name"`
	AdminTitle       string      `json:"admin_title"`
	WarehouseName    string      `json:"warehouse_name"`
	HandoverTemplate string      `json:"handover_template"`
	Sync             *SyncConfig `json:"sync"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

type GetSettingsRequest struct{}

type UpdateSettingsRequest struct {
	Settings *Settings `json:"settings"`
}

type SettingsResponse struct {
	Settings *Settings `json:"settings"`
}

type TestConnectionRequest struct {
	Sync *SyncConfig `json:"sync"`
}

type TestConnectionResponse struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message"`
}
