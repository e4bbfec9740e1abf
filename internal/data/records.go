package data

// Attributes - базовые атрибуты оператора для одной точки фазы (level 1 или max level).
type Attributes struct {
	MaxHP           float64 `yaml:"max_hp"`
	Atk             float64 `yaml:"atk"`
	Def             float64 `yaml:"def"`
	MagicResistance float64 `yaml:"magic_resistance"`
	Cost            float64 `yaml:"cost"`
	BlockCount      int     `yaml:"block_count"`
	BaseAttackTime  float64 `yaml:"base_attack_time"` // seconds per attack
	RespawnTime     float64 `yaml:"respawn_time"`
}

// PhaseRecord holds attributes at level 1 and at the phase level cap.
type PhaseRecord struct {
	Min Attributes `yaml:"min"`
	Max Attributes `yaml:"max"`
}

// PotentialRecord is one potential bonus; it applies from Rank upward.
type PotentialRecord struct {
	Rank      int     `yaml:"rank"`
	Attribute string  `yaml:"attribute"` // atk, max_hp, def, magic_resistance, attack_speed, cost
	Value     float64 `yaml:"value"`
}

// TrustRecord holds attribute bonuses at 100% trust.
type TrustRecord struct {
	MaxHP float64 `yaml:"max_hp"`
	Atk   float64 `yaml:"atk"`
	Def   float64 `yaml:"def"`
}

// ModuleLevelRecord is one module stage.
type ModuleLevelRecord struct {
	Level      int                `yaml:"level"`
	Attributes map[string]float64 `yaml:"attributes"` // atk, max_hp, def, attack_speed
	Params     map[string]float64 `yaml:"params"`     // talent overrides
}

// ModuleRecord - модуль оператора (uniequip).
type ModuleRecord struct {
	ID     string              `yaml:"id"`
	Name   string              `yaml:"name"`
	Levels []ModuleLevelRecord `yaml:"levels"`
}

// SkillLevelRecord is one skill level with its blackboard.
type SkillLevelRecord struct {
	Level    int                `yaml:"level"`
	Duration float64            `yaml:"duration"`
	SPCost   float64            `yaml:"sp_cost"`
	Params   map[string]float64 `yaml:"params"`
}

// SkillRecord - навык оператора со всеми уровнями (1..7 + mastery 8..10).
type SkillRecord struct {
	ID     string             `yaml:"id"`
	Name   string             `yaml:"name"`
	Levels []SkillLevelRecord `yaml:"levels"`
}

// TalentCandidate is one unlock stage of a talent. All requirements must hold.
type TalentCandidate struct {
	Phase       int                `yaml:"phase"`
	Level       int                `yaml:"level"`
	Potential   int                `yaml:"potential"`
	ModuleID    string             `yaml:"module_id"`
	ModuleLevel int                `yaml:"module_level"`
	Params      map[string]float64 `yaml:"params"`
}

// TalentRecord groups the candidates of one talent.
type TalentRecord struct {
	Name       string            `yaml:"name"`
	Candidates []TalentCandidate `yaml:"candidates"`
}

// OperatorRecord - сырая запись оператора из game data.
type OperatorRecord struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Rarity     int               `yaml:"rarity"` // 1..6
	Profession string            `yaml:"profession"`
	AttackType string            `yaml:"attack_type"`
	Phases     []PhaseRecord     `yaml:"phases"`
	Potentials []PotentialRecord `yaml:"potentials"`
	Trust      TrustRecord       `yaml:"trust"`
	Modules    []ModuleRecord    `yaml:"modules"`
	Skills     []SkillRecord     `yaml:"skills"`
	Talents    []TalentRecord    `yaml:"talents"`
}

// Module returns the module with the given id.
func (r *OperatorRecord) Module(id string) (*ModuleRecord, bool) {
	for i := range r.Modules {
		if r.Modules[i].ID == id {
			return &r.Modules[i], true
		}
	}
	return nil, false
}

// EnemyAttributes - атрибуты врага; калькулятору нужны только def и res.
type EnemyAttributes struct {
	MaxHP           float64 `yaml:"max_hp"`
	Atk             float64 `yaml:"atk"`
	Def             float64 `yaml:"def"`
	MagicResistance float64 `yaml:"magic_resistance"`
}

// EnemyRecord - сырая запись врага.
type EnemyRecord struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	Level      int             `yaml:"level"`
	Attributes EnemyAttributes `yaml:"attributes"`
}
