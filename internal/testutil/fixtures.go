package testutil

// Row types mirror the JSON the API sends, including its inconsistent
// quoting: ids arrive as numbers and amounts as numbers.

// TestMobile is the customer number used across tests.
const TestMobile = "9884358122"

type ProjectRow struct {
	ProjectName         string `json:"ProjectName"`
	Projectsite         string `json:"Projectsite"`
	UnitNo              string `json:"UnitNo"`
	ProjectId           int    `json:"ProjectId"`
	ProjectPlotidTranid int    `json:"ProjectPlotidTranid"`
}

type CustomerRow struct {
	CustomerName string `json:"CustomerName"`
	MobileNo     string `json:"MobileNo"`
}

type DetailRow struct {
	Status       string  `json:"Status"`
	BookedDate   string  `json:"BookedDate"`
	RegDate      string  `json:"RegDate"`
	CustomerName string  `json:"CustomerName"`
	MobileNo     string  `json:"MobileNo"`
	Address      string  `json:"Address"`
	Totalcost    float64 `json:"Totalcost"`
	RecAmount    float64 `json:"RecAmount"`
	Balance      float64 `json:"Balance"`
}

type ReceiptRow struct {
	Sno        int     `json:"Sno"`
	Amount     float64 `json:"Amount"`
	RecDate    string  `json:"RecDate"`
	Stage      string  `json:"Stage"`
	ModeofCash string  `json:"ModeofCash"`
	RefNo      string  `json:"RefNo"`
}

// SampleProjects returns two booked units for TestMobile.
func SampleProjects() []ProjectRow {
	return []ProjectRow{
		{ProjectName: "VGN Highland", Projectsite: "Ambattur", UnitNo: "A-101", ProjectId: 12, ProjectPlotidTranid: 7001},
		{ProjectName: "VGN Paradise", Projectsite: "Porur", UnitNo: "B-22", ProjectId: 15, ProjectPlotidTranid: 7002},
	}
}

// SampleDetail returns a booking with payments received.
func SampleDetail() DetailRow {
	return DetailRow{
		Status:       "Booked",
		BookedDate:   "12-01-2024",
		RegDate:      "20-03-2024",
		CustomerName: "Ravi Kumar",
		MobileNo:     TestMobile,
		Address:      "12 Lake Road, Chennai",
		Totalcost:    4500000,
		RecAmount:    1250000,
		Balance:      3250000,
	}
}

// SampleReceipts returns two receipts for SampleDetail.
func SampleReceipts() []ReceiptRow {
	return []ReceiptRow{
		{Sno: 1, Amount: 500000, RecDate: "/Date(1704067200000)/", Stage: "Booking", ModeofCash: "Cheque", RefNo: "CHQ-881"},
		{Sno: 2, Amount: 750000, RecDate: "/Date(1711929600000)/", Stage: "Agreement", ModeofCash: "NEFT", RefNo: "UTR-42"},
	}
}
