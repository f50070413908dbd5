package types

// EmergencyType is the closed set of emergency categories the advisory
// pipeline knows keyword tables and fallback links for.
type EmergencyType string

const (
	Burns         EmergencyType = "BURNS"
	Fracture      EmergencyType = "FRACTURE"
	Bleeding      EmergencyType = "BLEEDING"
	CPR           EmergencyType = "CPR"
	Choking       EmergencyType = "CHOKING"
	ElectricShock EmergencyType = "ELECTRIC_SHOCK"
	Hypothermia   EmergencyType = "HYPOTHERMIA"
	Heatstroke    EmergencyType = "HEATSTROKE"
	Poisoning     EmergencyType = "POISONING"
	Seizure       EmergencyType = "SEIZURE"
	AnimalBite    EmergencyType = "ANIMAL_BITE"
	AsthmaAttack  EmergencyType = "ASTHMA_ATTACK"
	HeartAttack   EmergencyType = "HEART_ATTACK"
)

var emergencyTypes = map[EmergencyType]bool{
	Burns:         true,
	Fracture:      true,
	Bleeding:      true,
	CPR:           true,
	Choking:       true,
	ElectricShock: true,
	Hypothermia:   true,
	Heatstroke:    true,
	Poisoning:     true,
	Seizure:       true,
	AnimalBite:    true,
	AsthmaAttack:  true,
	HeartAttack:   true,
}

// ParseEmergencyType validates a raw string against the closed enumeration.
func ParseEmergencyType(s string) (EmergencyType, bool) {
	et := EmergencyType(s)
	return et, emergencyTypes[et]
}
