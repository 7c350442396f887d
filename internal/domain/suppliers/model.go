package suppliers

type Supplier struct {
	ID            int64  `json:"id"`
	SupplierName  string `json:"supplierName"`
	ContactPerson string `json:"contactPerson"`
	ContactEmail  string `json:"contactEmail"`
	ContactPhone  string `json:"contactPhone"`
	Address       string `json:"address"`
	IsActive      bool   `json:"isActive"`
	DateAdded     string `json:"dateAdded"`
}

type Input struct {
	SupplierName  string `json:"supplierName"`
	ContactPerson string `json:"contactPerson"`
	ContactEmail  string `json:"contactEmail"`
	ContactPhone  string `json:"contactPhone"`
	Address       string `json:"address"`
	IsActive      bool   `json:"isActive"`
}
