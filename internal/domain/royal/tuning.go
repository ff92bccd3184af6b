package royal

const (
	MaxRoyalGuards   = 20
	MaxMonsterGuards = 100

	MinLevelKing = 20

	BaseGuardSalary      = 300
	GuardRecruitmentCost = 5000
	HiredGuardLoyalty    = 90

	// Each additional moat monster costs half the base price more than
	// the previous one.
	MonsterGuardBaseCost      = 2000
	MonsterGuardCostIncrement = MonsterGuardBaseCost / 2

	// Defending kings fight harder on their own throne. Applies to HP and
	// defence only, never offense.
	KingDefenderHPBonus  = 1.35
	KingDefenderDefBonus = 1.20

	KingDailyStipend    = 500
	KingStipendPerLevel = 100

	DefaultTreasurySeed = 5000
	DefaultTaxRate      = 5

	GuardFleeLoyaltyThreshold = 30
	GuardFleeChance           = 0.30

	SiegeSurrenderLoyaltyThreshold = 50
	SiegeSurrenderChance           = 0.40

	MonarchHistoryCap = 100

	// Succession scoring class bonuses.
	ClassBonusPaladin = 50
	ClassBonusCleric  = 30
	ClassBonusWarrior = 20
)
