// Package work реализует работу — кулдаун-ограниченный источник дохода.
// jobs.go описывает каталог профессий: неизменяемая таблица,
// загружаемая один раз, вместо магических пар по коду.
package work

// Job — одна профессия с фиксированными параметрами дохода и опыта.
type Job struct {
	Key        string // Ключ для callback-данных
	Name       string // Название для игрока
	BaseIncome int    // Базовый доход за одну работу
	XPGain     int    // Прирост опыта за одну работу
}

// jobs — каталог из десяти профессий.
var jobs = []Job{
	{Key: "farm", Name: "ферма", BaseIncome: 12, XPGain: 8},
	{Key: "mine", Name: "шахта", BaseIncome: 15, XPGain: 12},
	{Key: "build", Name: "стройка", BaseIncome: 14, XPGain: 10},
	{Key: "fish", Name: "рыбалка", BaseIncome: 10, XPGain: 6},
	{Key: "wood", Name: "лесозаготовка", BaseIncome: 13, XPGain: 9},
	{Key: "hunt", Name: "охота", BaseIncome: 16, XPGain: 14},
	{Key: "cook", Name: "готовка", BaseIncome: 11, XPGain: 7},
	{Key: "art", Name: "искусство", BaseIncome: 18, XPGain: 15},
	{Key: "tech", Name: "технологии", BaseIncome: 20, XPGain: 18},
	{Key: "space", Name: "космос", BaseIncome: 25, XPGain: 22},
}

// defaultJob — запасной вариант для нераспознанного ключа.
// Незнакомая профессия не ошибка, а работа за минимальную ставку.
var defaultJob = Job{Key: "default", Name: "подработка", BaseIncome: 10, XPGain: 5}

// JobByKey возвращает профессию по ключу либо запасной вариант.
func JobByKey(key string) Job {
	for _, j := range jobs {
		if j.Key == key {
			return j
		}
	}
	return defaultJob
}

// AllJobs возвращает копию каталога (для построения клавиатуры).
func AllJobs() []Job {
	out := make([]Job, len(jobs))
	copy(out, jobs)
	return out
}
