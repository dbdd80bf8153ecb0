package model

// Job is a combat job name. Jobs double as weapon identifiers: a weapon
// wish and a direct weapon drop are both expressed as the job they belong to.
type Job string

const (
	JobPaladin    Job = "ナイト"
	JobWarrior    Job = "戦士"
	JobDarkKnight Job = "暗黒騎士"
	JobGunbreaker Job = "ガンブレイカー"

	JobWhiteMage   Job = "白魔道士"
	JobScholar     Job = "学者"
	JobAstrologian Job = "占星術師"
	JobSage        Job = "賢者"

	JobMonk    Job = "モンク"
	JobDragoon Job = "竜騎士"
	JobNinja   Job = "忍者"
	JobSamurai Job = "侍"
	JobReaper  Job = "リーパー"
	JobViper   Job = "ヴァイパー"

	JobBard      Job = "吟遊詩人"
	JobMachinist Job = "機工士"
	JobDancer    Job = "踊り子"

	JobBlackMage   Job = "黒魔道士"
	JobSummoner    Job = "召喚士"
	JobRedMage     Job = "赤魔道士"
	JobPictomancer Job = "ピクトマンサー"
)

var jobRoles = map[Job]Role{
	JobPaladin:    RoleTank,
	JobWarrior:    RoleTank,
	JobDarkKnight: RoleTank,
	JobGunbreaker: RoleTank,

	JobWhiteMage:   RoleHealer,
	JobScholar:     RoleHealer,
	JobAstrologian: RoleHealer,
	JobSage:        RoleHealer,

	JobMonk:    RoleDPS,
	JobDragoon: RoleDPS,
	JobNinja:   RoleDPS,
	JobSamurai: RoleDPS,
	JobReaper:  RoleDPS,
	JobViper:   RoleDPS,

	JobBard:      RoleDPS,
	JobMachinist: RoleDPS,
	JobDancer:    RoleDPS,

	JobBlackMage:   RoleDPS,
	JobSummoner:    RoleDPS,
	JobRedMage:     RoleDPS,
	JobPictomancer: RoleDPS,
}

func (j Job) IsValid() bool {
	_, ok := jobRoles[j]
	return ok
}

// Role returns the role category the job belongs to.
func (j Job) Role() Role {
	return jobRoles[j]
}

// Jobs returns all known jobs. Order is not significant.
func Jobs() []Job {
	jobs := make([]Job, 0, len(jobRoles))
	for j := range jobRoles {
		jobs = append(jobs, j)
	}
	return jobs
}
