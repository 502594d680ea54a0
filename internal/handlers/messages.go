package handlers

import (
	"strings"

	"titanicdash/internal/models"
	"titanicdash/internal/stats"
)

// Messages is one localized set of user-facing texts
type Messages struct {
	Lang  string
	Title string

	Loading      string
	LoadFailed   string
	ErrorPrefix  string
	NoChartData  string
	BackToBoard  string
	CommentsDown string

	TotalPassengers string
	Survivors       string
	Deaths          string
	SurvivalRate    string

	Classes         [3]string
	Male            string
	Female          string
	ClassCountTitle string
	ClassCountLabel string
	SurvivorsTitle  string
	AverageAgeTitle string
	AverageAgeLabel string
	AverageAgeAxis  string

	PassengerList string
	SearchName    string
	AllSexes      string
	AllOutcomes   string
	Survived      string
	NotSurvived   string
	AllClasses    string
	ApplyFilter   string
	ColName       string
	ColClass      string
	ColSurvived   string
	ColSex        string
	ColAge        string
	ColFare       string
	ColEmbarked   string
	ColCabin      string
	ColHomeDest   string
	Previous      string
	Next          string
	PageOf        string
	MatchCount    string
	NoRows        string

	CommentsHeading string
	AddComment      string
	Add             string
	Edit            string
	Save            string
	Cancel          string
	Delete          string

	ConfirmDeleteTitle string
	ConfirmDeleteText  string

	flash map[string]string
}

// Flash returns the localized text for a flash key, or "" for unknown keys
func (m Messages) Flash(key string) string {
	return m.flash[key]
}

// ChartTitle returns the heading of a chart panel
func (m Messages) ChartTitle(t models.ChartType) string {
	switch t {
	case models.ChartClassCount:
		return m.ClassCountTitle
	case models.ChartSurvived:
		return m.SurvivorsTitle
	case models.ChartAge:
		return m.AverageAgeTitle
	}
	return string(t)
}

// SeriesLabels returns the texts the aggregator uses to title chart series
func (m Messages) SeriesLabels() stats.SeriesLabels {
	return stats.SeriesLabels{
		Classes:         m.Classes,
		Male:            m.Male,
		Female:          m.Female,
		ClassCountTitle: m.ClassCountTitle,
		ClassCountLabel: m.ClassCountLabel,
		SurvivorsTitle:  m.SurvivorsTitle,
		AverageAgeTitle: m.AverageAgeTitle,
		AverageAgeLabel: m.AverageAgeLabel,
		AverageAgeAxis:  m.AverageAgeAxis,
	}
}

var thai = Messages{
	Lang:  "th",
	Title: "แดชบอร์ดผู้โดยสาร",

	Loading:      "กำลังโหลดข้อมูล...",
	LoadFailed:   "ไม่สามารถโหลดข้อมูลได้",
	ErrorPrefix:  "เกิดข้อผิดพลาด",
	NoChartData:  "ไม่มีข้อมูล",
	BackToBoard:  "กลับสู่แดชบอร์ด",
	CommentsDown: "ไม่สามารถโหลดความคิดเห็นได้",

	TotalPassengers: "ผู้โดยสารทั้งหมด",
	Survivors:       "ผู้รอดชีวิต",
	Deaths:          "ผู้เสียชีวิต",
	SurvivalRate:    "อัตราการรอดชีวิต",

	Classes:         [3]string{"ชั้น 1", "ชั้น 2", "ชั้น 3"},
	Male:            "ชาย",
	Female:          "หญิง",
	ClassCountTitle: "จำนวนผู้โดยสารของแต่ละคลาส",
	ClassCountLabel: "จำนวนผู้โดยสาร",
	SurvivorsTitle:  "ผู้รอดชีวิต",
	AverageAgeTitle: "อายุเฉลี่ยของแต่ละคลาส",
	AverageAgeLabel: "อายุเฉลี่ย",
	AverageAgeAxis:  "อายุ (ปี)",

	PassengerList: "รายชื่อผู้โดยสาร",
	SearchName:    "ค้นหาชื่อ...",
	AllSexes:      "เพศทั้งหมด",
	AllOutcomes:   "ทั้งหมด (รอด/ไม่รอด)",
	Survived:      "รอด",
	NotSurvived:   "ไม่รอด",
	AllClasses:    "ชั้นทั้งหมด",
	ApplyFilter:   "กรอง",
	ColName:       "ชื่อ",
	ColClass:      "ชั้นโดยสาร",
	ColSurvived:   "รอดชีวิต",
	ColSex:        "เพศ",
	ColAge:        "อายุ",
	ColFare:       "ค่าโดยสาร",
	ColEmbarked:   "ท่าเรือ",
	ColCabin:      "ห้องพัก",
	ColHomeDest:   "จุดหมาย",
	Previous:      "ก่อนหน้า",
	Next:          "ถัดไป",
	PageOf:        "หน้า %d จาก %d",
	MatchCount:    "พบ %s รายการ",
	NoRows:        "ไม่พบข้อมูล",

	CommentsHeading: "ความคิดเห็น",
	AddComment:      "เพิ่มความคิดเห็น",
	Add:             "เพิ่ม",
	Edit:            "แก้ไข",
	Save:            "บันทึก",
	Cancel:          "ยกเลิก",
	Delete:          "ลบ",

	ConfirmDeleteTitle: "ยืนยันการลบ?",
	ConfirmDeleteText:  "คุณต้องการลบความคิดเห็นนี้หรือไม่?",

	flash: map[string]string{
		FlashCreated:      "เพิ่มความคิดเห็นเรียบร้อยแล้ว",
		FlashUpdated:      "บันทึกความคิดเห็นเรียบร้อยแล้ว",
		FlashDeleted:      "ลบสำเร็จ ความคิดเห็นถูกลบเรียบร้อยแล้ว",
		FlashCreateFailed: "ไม่สามารถเพิ่มความคิดเห็นได้",
		FlashUpdateFailed: "ไม่สามารถบันทึกความคิดเห็นได้",
		FlashDeleteFailed: "ไม่สามารถลบความคิดเห็นได้",
		FlashConflict:     "ความคิดเห็นนี้ถูกแก้ไขโดยผู้อื่นแล้ว กรุณาลองใหม่",
		FlashNotFound:     "ไม่พบความคิดเห็นนี้",
		FlashTooLong:      "ความคิดเห็นยาวเกินไป",
	},
}

var english = Messages{
	Lang:  "en",
	Title: "Passenger Dashboard",

	Loading:      "Loading data...",
	LoadFailed:   "Could not load the dataset",
	ErrorPrefix:  "Error",
	NoChartData:  "No data",
	BackToBoard:  "Back to dashboard",
	CommentsDown: "Comments could not be loaded",

	TotalPassengers: "Total passengers",
	Survivors:       "Survivors",
	Deaths:          "Deaths",
	SurvivalRate:    "Survival rate",

	Classes:         [3]string{"1st class", "2nd class", "3rd class"},
	Male:            "Male",
	Female:          "Female",
	ClassCountTitle: "Passengers per class",
	ClassCountLabel: "Passengers",
	SurvivorsTitle:  "Survivors",
	AverageAgeTitle: "Average age per class",
	AverageAgeLabel: "Average age",
	AverageAgeAxis:  "Age (years)",

	PassengerList: "Passenger list",
	SearchName:    "Search name...",
	AllSexes:      "All sexes",
	AllOutcomes:   "All (survived/not)",
	Survived:      "Survived",
	NotSurvived:   "Did not survive",
	AllClasses:    "All classes",
	ApplyFilter:   "Filter",
	ColName:       "Name",
	ColClass:      "Class",
	ColSurvived:   "Survived",
	ColSex:        "Sex",
	ColAge:        "Age",
	ColFare:       "Fare",
	ColEmbarked:   "Port",
	ColCabin:      "Cabin",
	ColHomeDest:   "Destination",
	Previous:      "Previous",
	Next:          "Next",
	PageOf:        "Page %d of %d",
	MatchCount:    "Matching passengers: %s",
	NoRows:        "No passengers match",

	CommentsHeading: "Comments",
	AddComment:      "Add a comment",
	Add:             "Add",
	Edit:            "Edit",
	Save:            "Save",
	Cancel:          "Cancel",
	Delete:          "Delete",

	ConfirmDeleteTitle: "Confirm delete?",
	ConfirmDeleteText:  "Do you want to delete this comment?",

	flash: map[string]string{
		FlashCreated:      "Comment added",
		FlashUpdated:      "Comment saved",
		FlashDeleted:      "Deleted. The comment has been removed.",
		FlashCreateFailed: "Could not add the comment",
		FlashUpdateFailed: "Could not save the comment",
		FlashDeleteFailed: "Could not delete the comment",
		FlashConflict:     "This comment was changed by someone else. Please try again.",
		FlashNotFound:     "Comment not found",
		FlashTooLong:      "The comment is too long",
	},
}

// MessagesFor returns the message set for locale, falling back to Thai
func MessagesFor(locale string) Messages {
	lang, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(locale)), "-")
	lang, _, _ = strings.Cut(lang, "_")
	if lang == "en" {
		return english
	}
	return thai
}
