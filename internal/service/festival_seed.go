package service

import (
	"time"

	"github.com/easystock/easystock-api/internal/models"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// thaiFestivalSeeds returns the standard Thai holiday calendar for one year.
// Lunar-calendar holidays use their most common Gregorian placement; admins
// can adjust the dates after seeding.
func thaiFestivalSeeds(year int) []models.Festival {
	return []models.Festival{
		{
			Name:        "วันขึ้นปีใหม่",
			Description: "New Year's Day",
			StartDate:   day(year, time.January, 1),
			EndDate:     day(year, time.January, 1),
			IsRecurring: true,
			Category:    models.FestivalNewYear,
			Icon:        "🎉",
			Color:       "#e74c3c",
		},
		{
			Name:        "ตรุษจีน",
			Description: "Chinese New Year",
			StartDate:   day(year, time.February, 10),
			EndDate:     day(year, time.February, 12),
			IsRecurring: true,
			Category:    models.FestivalNewYear,
			Icon:        "🧧",
			Color:       "#c0392b",
		},
		{
			Name:        "วันมาฆบูชา",
			Description: "Makha Bucha Day",
			StartDate:   day(year, time.February, 24),
			EndDate:     day(year, time.February, 24),
			IsRecurring: true,
			Category:    models.FestivalHoliday,
			Icon:        "🕯️",
			Color:       "#f39c12",
		},
		{
			Name:        "วันสงกรานต์",
			Description: "Songkran Festival",
			StartDate:   day(year, time.April, 13),
			EndDate:     day(year, time.April, 15),
			IsRecurring: true,
			Category:    models.FestivalSongkran,
			Icon:        "💦",
			Color:       "#3498db",
		},
		{
			Name:        "วันแรงงาน",
			Description: "Labour Day",
			StartDate:   day(year, time.May, 1),
			EndDate:     day(year, time.May, 1),
			IsRecurring: true,
			Category:    models.FestivalHoliday,
			Icon:        "🛠️",
			Color:       "#7f8c8d",
		},
		{
			Name:        "วันวิสาขบูชา",
			Description: "Visakha Bucha Day",
			StartDate:   day(year, time.May, 22),
			EndDate:     day(year, time.May, 22),
			IsRecurring: true,
			Category:    models.FestivalHoliday,
			Icon:        "🕯️",
			Color:       "#f39c12",
		},
		{
			Name:        "วันอาสาฬหบูชา",
			Description: "Asalha Bucha Day",
			StartDate:   day(year, time.July, 20),
			EndDate:     day(year, time.July, 20),
			IsRecurring: true,
			Category:    models.FestivalHoliday,
			Icon:        "🕯️",
			Color:       "#f39c12",
		},
		{
			Name:        "วันเข้าพรรษา",
			Description: "Buddhist Lent Day",
			StartDate:   day(year, time.July, 21),
			EndDate:     day(year, time.July, 21),
			IsRecurring: true,
			Category:    models.FestivalHoliday,
			Icon:        "🙏",
			Color:       "#e67e22",
		},
		{
			Name:        "วันแม่แห่งชาติ",
			Description: "Mother's Day",
			StartDate:   day(year, time.August, 12),
			EndDate:     day(year, time.August, 12),
			IsRecurring: true,
			Category:    models.FestivalSpecial,
			Icon:        "💙",
			Color:       "#2980b9",
		},
		{
			Name:        "เทศกาลกินเจ",
			Description: "Vegetarian Festival",
			StartDate:   day(year, time.October, 3),
			EndDate:     day(year, time.October, 11),
			IsRecurring: true,
			Category:    models.FestivalGeneric,
			Icon:        "🥬",
			Color:       "#27ae60",
		},
		{
			Name:        "วันพ่อแห่งชาติ",
			Description: "Father's Day",
			StartDate:   day(year, time.December, 5),
			EndDate:     day(year, time.December, 5),
			IsRecurring: true,
			Category:    models.FestivalSpecial,
			Icon:        "💛",
			Color:       "#f1c40f",
		},
		{
			Name:        "วันลอยกระทง",
			Description: "Loy Krathong",
			StartDate:   day(year, time.November, 15),
			EndDate:     day(year, time.November, 15),
			IsRecurring: true,
			Category:    models.FestivalGeneric,
			Icon:        "🪷",
			Color:       "#9b59b6",
		},
		{
			Name:        "คริสต์มาสและส่งท้ายปี",
			Description: "Christmas and year-end season",
			StartDate:   day(year, time.December, 24),
			EndDate:     day(year, time.December, 31),
			IsRecurring: true,
			Category:    models.FestivalSpecial,
			Icon:        "🎄",
			Color:       "#16a085",
		},
	}
}
