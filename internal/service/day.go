package service

import (
	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/ident"
)

// Fixed Arabic titles of the generated day structure.
const (
	TitleSunrise   = "الشروق"
	TitleLastThird = "الثلث الأخير"

	TitleSuhoor           = "السحور"
	TitleMorningAthkar    = "أذكار الصباح"
	TitleDuha             = "الضحى"
	TitleEveningAthkar    = "أذكار المساء"
	TitleQiyam            = "القيام"
	TitleTahajjud         = "التهجد"
	TitleWitr             = "الوتر"
	ChecklistCongregation = "جماعة"
	ChecklistOnTime       = "في الوقت"
	ChecklistRemembrance  = "أذكار الصلاة"
)

type sunnah struct {
	title string
	typ   internal.TaskType
}

func prayerChecklist(ids *ident.Generator) []internal.ChecklistItem {
	return []internal.ChecklistItem{
		{ID: ids.Next(ident.PrefixChecklist), TitleAr: ChecklistCongregation},
		{ID: ids.Next(ident.PrefixChecklist), TitleAr: ChecklistOnTime},
		{ID: ids.Next(ident.PrefixChecklist), TitleAr: ChecklistRemembrance},
	}
}

func makePrayerCheckpoint(ids *ident.Generator, title, clock, mainTitle string, pre, post []sunnah) internal.Checkpoint {
	tasks := make([]internal.Task, 0, len(pre)+1+len(post))
	for _, s := range pre {
		tasks = append(tasks, internal.Task{ID: ids.Next(ident.PrefixTask), Type: s.typ, TitleAr: s.title})
	}
	tasks = append(tasks, internal.Task{ID: ids.Next(ident.PrefixTask), Type: internal.MainTask, TitleAr: mainTitle})
	for _, s := range post {
		tasks = append(tasks, internal.Task{ID: ids.Next(ident.PrefixTask), Type: s.typ, TitleAr: s.title})
	}
	return internal.Checkpoint{
		ID:        ids.Next(ident.PrefixCheckpoint),
		TitleAr:   title,
		Time:      clock,
		IsLocked:  true,
		Tasks:     tasks,
		Checklist: prayerChecklist(ids),
	}
}

func checkpointItem(cp internal.Checkpoint) internal.TimelineItem {
	return internal.TimelineItem{Kind: internal.KindCheckpoint, Checkpoint: &cp}
}

func standaloneItem(st internal.StandaloneTask) internal.TimelineItem {
	return internal.TimelineItem{Kind: internal.KindTask, Task: &st}
}

// GenerateDefaultDay builds the canonical timeline for a calendar day in
// fixed chronological order. Every call produces a fresh object graph with
// freshly minted IDs; this is the only place default structure is authored.
func GenerateDefaultDay(ids *ident.Generator, dateGregorian string, hijri internal.HijriDate, times internal.PrayerTimes, lastThird string) internal.DayData {
	fajr := makePrayerCheckpoint(ids, internal.PrayerNames[0], times.Fajr, "صلاة الفجر",
		[]sunnah{{"سنة الفجر (ركعتان)", internal.SecondaryTask}}, nil)
	dhuhr := makePrayerCheckpoint(ids, internal.PrayerNames[1], times.Dhuhr, "صلاة الظهر",
		[]sunnah{{"سنة قبل الظهر (٤ ركعات)", internal.SecondaryTask}},
		[]sunnah{{"سنة بعد الظهر (ركعتان)", internal.SecondaryTask}})
	asr := makePrayerCheckpoint(ids, internal.PrayerNames[2], times.Asr, "صلاة العصر",
		[]sunnah{{"سنة قبل العصر (٤ ركعات)", internal.RegularTask}}, nil)
	maghrib := makePrayerCheckpoint(ids, internal.PrayerNames[3], times.Maghrib, "صلاة المغرب",
		nil, []sunnah{{"سنة بعد المغرب (ركعتان)", internal.SecondaryTask}})
	isha := makePrayerCheckpoint(ids, internal.PrayerNames[4], times.Isha, "صلاة العشاء",
		nil, []sunnah{{"سنة بعد العشاء (ركعتان)", internal.SecondaryTask}})

	sunrise := internal.Checkpoint{
		ID:        ids.Next(ident.PrefixCheckpoint),
		TitleAr:   TitleSunrise,
		Time:      times.Sunrise,
		Tasks:     []internal.Task{},
		Checklist: []internal.ChecklistItem{},
	}
	lastThirdCp := internal.Checkpoint{
		ID:        ids.Next(ident.PrefixCheckpoint),
		TitleAr:   TitleLastThird,
		Time:      lastThird,
		Tasks:     []internal.Task{},
		Checklist: []internal.ChecklistItem{},
	}

	nightAct := func(title string) internal.StandaloneTask {
		return internal.StandaloneTask{
			ID:                 ids.Next(ident.PrefixStandalone),
			Type:               internal.SecondaryTask,
			TitleAr:            title,
			ParentCheckpointID: lastThirdCp.ID,
		}
	}

	timeline := []internal.TimelineItem{
		standaloneItem(internal.StandaloneTask{ID: ids.Next(ident.PrefixStandalone), Type: internal.RegularTask, TitleAr: TitleSuhoor}),
		checkpointItem(fajr),
		standaloneItem(internal.StandaloneTask{ID: ids.Next(ident.PrefixStandalone), Type: internal.RegularTask, TitleAr: TitleMorningAthkar}),
		checkpointItem(sunrise),
		standaloneItem(internal.StandaloneTask{ID: ids.Next(ident.PrefixStandalone), Type: internal.SecondaryTask, TitleAr: TitleDuha}),
		checkpointItem(dhuhr),
		checkpointItem(asr),
		standaloneItem(internal.StandaloneTask{ID: ids.Next(ident.PrefixStandalone), Type: internal.RegularTask, TitleAr: TitleEveningAthkar}),
		checkpointItem(maghrib),
		checkpointItem(isha),
		checkpointItem(lastThirdCp),
		standaloneItem(nightAct(TitleQiyam)),
		standaloneItem(nightAct(TitleTahajjud)),
		standaloneItem(nightAct(TitleWitr)),
	}

	return internal.DayData{
		DateGregorian: dateGregorian,
		DateHijri:     hijri,
		PrayerTimes:   times,
		Timeline:      timeline,
	}
}
