package algorithms

import (
	"cmp"
	"slices"
	"strings"

	"hirehub/internal/models"
)

// JobMatch - вакансия с оценкой соответствия соискателю (0-100)
type JobMatch struct {
	Job     models.Job `json:"job"`
	Score   float64    `json:"score"`
	Reasons []string   `json:"reasons"`
}

// CalculateMatchScore оценивает, насколько вакансия подходит соискателю
func CalculateMatchScore(job models.Job, seeker models.User) (float64, []string) {
	score := 0.0
	reasons := []string{}

	// Навыки против требований (50)
	skillScore := calculateSkillOverlap(job.Requirements, seeker.Skills)
	score += skillScore
	if skillScore > 25 {
		reasons = append(reasons, "Skills match requirements")
	}

	// Город или удаленка (25)
	switch {
	case job.Type == models.JobTypeRemote:
		score += 25
		reasons = append(reasons, "Remote position")
	case job.Location != "" && strings.EqualFold(strings.TrimSpace(job.Location), strings.TrimSpace(seeker.Location)):
		score += 25
		reasons = append(reasons, "Same location")
	}

	// Навык прямо в названии (15)
	title := strings.ToLower(job.Title)
	for _, s := range seeker.Skills {
		if s != "" && strings.Contains(title, strings.ToLower(s)) {
			score += 15
			reasons = append(reasons, "Title mentions "+s)
			break
		}
	}

	if job.IsFeatured {
		score += 5
	}
	if job.IsUrgent {
		score += 5
		reasons = append(reasons, "Urgent hiring")
	}

	return min(score, 100), reasons
}

// calculateSkillOverlap - доля требований, закрытых навыками (0-50)
func calculateSkillOverlap(requirements, skills []string) float64 {
	if len(requirements) == 0 {
		return 25 // требований нет, половина баллов
	}

	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	matches := 0
	for _, r := range requirements {
		if _, ok := have[strings.ToLower(strings.TrimSpace(r))]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(requirements)) * 50.0
}

// RankJobs - активные вакансии по убыванию оценки, свежие выше при равенстве.
// skip - id вакансий, которые не предлагать (уже есть отклик). limit <= 0 - без ограничения.
func RankJobs(jobs []models.Job, seeker models.User, skip map[string]bool, limit int) []JobMatch {
	out := make([]JobMatch, 0, len(jobs))
	for _, j := range jobs {
		if j.Status != models.JobStatusActive || skip[j.ID] {
			continue
		}
		score, reasons := CalculateMatchScore(j, seeker)
		out = append(out, JobMatch{Job: j, Score: score, Reasons: reasons})
	}

	slices.SortStableFunc(out, func(a, b JobMatch) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return b.Job.PostedAt.Compare(a.Job.PostedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
