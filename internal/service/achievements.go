package service

import (
	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
)

// Achievement is a fixed-catalog milestone with unlock state and clamped
// progress toward its threshold.
type Achievement struct {
	ID            string `json:"id"`
	TitleAr       string `json:"title_ar"`
	DescriptionAr string `json:"description_ar"`
	Icon          string `json:"icon"`
	Unlocked      bool   `json:"unlocked"`
	Progress      int    `json:"progress"` // 0-100
	Threshold     int    `json:"threshold"`
	Current       int    `json:"current"`
}

func achievement(id, title, description, icon string, threshold, current int) Achievement {
	progress := 100 * current / threshold
	if progress > 100 {
		progress = 100
	}
	return Achievement{
		ID:            id,
		TitleAr:       title,
		DescriptionAr: description,
		Icon:          icon,
		Threshold:     threshold,
		Current:       current,
		Unlocked:      current >= threshold,
		Progress:      progress,
	}
}

// Achievements evaluates the fixed milestone catalog against a snapshot
// batch and the computed streak. Catalog order is stable.
func Achievements(snaps []internal.SnapshotDocument, streak StreakInfo) []Achievement {
	totalPrayersDone := 0
	perfectDays := 0
	daysWithCustom := 0
	for _, s := range snaps {
		totalPrayersDone += s.PrayersCount
		if s.PrayersCount == 5 {
			perfectDays++
		}
		if s.CustomTasksDone > 0 {
			daysWithCustom++
		}
	}
	totalPoints := TotalPoints(snaps)

	return []Achievement{
		achievement("first_prayer", "أول خطوة", "أكمل أول صلاة", "Sunrise", 1, totalPrayersDone),
		achievement("streak_3", "ثلاثة أيام متتالية", "حافظ على الصلوات ٣ أيام متتالية", "Flame", 3, streak.Current),
		achievement("streak_7", "أسبوع كامل", "حافظ على الصلوات أسبوعاً كاملاً", "Flame", 7, streak.Longest),
		achievement("streak_30", "شهر التميز", "حافظ على الصلوات ٣٠ يوماً متتالية", "Trophy", 30, streak.Longest),
		achievement("perfect_day", "يوم مثالي", "أكمل جميع الصلوات الخمس في يوم واحد", "Star", 1, perfectDays),
		achievement("perfect_10", "عشرة أيام مثالية", "أكمل جميع الصلوات في ١٠ أيام", "Stars", 10, perfectDays),
		achievement("custom_task", "منجز", "أضف مهمة مخصصة وأكملها", "CheckSquare", 1, daysWithCustom),
		achievement("points_100", "مئة نقطة", "اجمع ١٠٠ نقطة", "Award", 100, totalPoints),
		achievement("points_500", "خمسمائة نقطة", "اجمع ٥٠٠ نقطة", "Award", 500, totalPoints),
		achievement("prayers_50", "خمسون صلاة", "أكمل ٥٠ صلاة", "BookOpen", 50, totalPrayersDone),
	}
}
