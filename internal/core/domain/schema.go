package domain

// FieldKind describes the value type a survey field carries on the wire.
type FieldKind int

const (
	// KindString is a free-text or single-choice field.
	KindString FieldKind = iota
	// KindBool is a yes/no field.
	KindBool
	// KindInt is a whole-number field.
	KindInt
	// KindFloat is a decimal field (areas, amounts, distances).
	KindFloat
	// KindStringList is a multi-select field, serialised as one
	// comma-joined string on the wire.
	KindStringList
)

// FieldSpec maps a single client field to its server representation.
// Source is the camelCase key used by the capture form, Target the
// snake_case key expected by the household API. The mapping is enumerated
// exhaustively; nothing is inferred from key names.
type FieldSpec struct {
	Source string
	Target string
	Kind   FieldKind
}

// Zero returns the field's default value, used both when the field is
// absent from a draft and when a value of an unexpected type is coerced.
func (f FieldSpec) Zero() any {
	switch f.Kind {
	case KindBool:
		return false
	case KindInt:
		return 0
	case KindFloat:
		return 0.0
	default:
		return ""
	}
}

// SectionSpec describes one of the survey's topical sections.
type SectionSpec struct {
	// Key is the client-side camelCase section key.
	Key string
	// Target is the server-side snake_case section key.
	Target string
	// Title is a human-readable label for UI display.
	Title string
	// Repeatable sections hold zero or more records per household;
	// singular sections hold at most one.
	Repeatable bool
	Fields     []FieldSpec
}

// Field returns the spec for the given source key, if present.
func (s SectionSpec) Field(source string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Source == source {
			return f, true
		}
	}
	return FieldSpec{}, false
}

func field(source, target string, kind FieldKind) FieldSpec {
	return FieldSpec{Source: source, Target: target, Kind: kind}
}

// IdentityFields are the flat household-identity scalars. They are always
// emitted, defaulting to their zero value when unset.
var IdentityFields = []FieldSpec{
	field("headName", "head_name", KindString),
	field("address", "address", KindString),
	field("postOffice", "post_office", KindString),
	field("colony", "colony", KindString),
	field("category", "category", KindString),
	field("microPlanNumber", "micro_plan_number", KindString),
	field("gramaPanchayat", "grama_panchayat", KindString),
	field("wardNumber", "ward_number", KindString),
	field("houseNumber", "house_number", KindString),
	field("familyMembersCount", "family_members_count", KindInt),
}

// Sections is the full catalog of the 33 survey sections, in the order the
// capture form presents them. Singular sections first, repeatable after.
var Sections = []SectionSpec{
	{
		Key: "housingDetails", Target: "housing_details", Title: "Housing",
		Fields: []FieldSpec{
			field("ownershipType", "ownership_type", KindString),
			field("structureType", "structure_type", KindString),
			field("roofType", "roof_type", KindString),
			field("wallType", "wall_type", KindString),
			field("floorType", "floor_type", KindString),
			field("roomCount", "room_count", KindInt),
			field("kitchenAvailable", "kitchen_available", KindBool),
			field("bathroomAttached", "bathroom_attached", KindBool),
			field("ageOfHouse", "age_of_house", KindInt),
			field("conditionOfHouse", "condition_of_house", KindString),
			field("repairsNeeded", "repairs_needed", KindBool),
			field("repairDetails", "repair_details", KindString),
			field("houseArea", "house_area", KindFloat),
			field("plotArea", "plot_area", KindFloat),
			field("rainwaterHarvesting", "rainwater_harvesting", KindBool),
			field("compoundWall", "compound_wall", KindBool),
			field("homesteadLandOwned", "homestead_land_owned", KindBool),
			field("pattaAvailable", "patta_available", KindBool),
			field("remarks", "remarks", KindString),
		},
	},
	{
		Key: "electricalFacilities", Target: "electrical_facilities", Title: "Electricity",
		Fields: []FieldSpec{
			field("hasElectricity", "has_electricity", KindBool),
			field("connectionType", "connection_type", KindString),
			field("meterNumber", "meter_number", KindString),
			field("bulbTypes", "bulb_types", KindStringList),
			field("bulbCount", "bulb_count", KindInt),
			field("appliances", "appliances", KindStringList),
			field("wiringCondition", "wiring_condition", KindString),
			field("monthlyBill", "monthly_bill", KindFloat),
			field("solarPanel", "solar_panel", KindBool),
		},
	},
	{
		Key: "sanitationFacilities", Target: "sanitation_facilities", Title: "Sanitation",
		Fields: []FieldSpec{
			field("hasToilet", "has_toilet", KindBool),
			field("toiletType", "toilet_type", KindString),
			field("toiletCondition", "toilet_condition", KindString),
			field("waterAvailableInToilet", "water_available_in_toilet", KindBool),
			field("septicTank", "septic_tank", KindBool),
			field("distanceFromWaterSource", "distance_from_water_source", KindFloat),
			field("needsNewToilet", "needs_new_toilet", KindBool),
		},
	},
	{
		Key: "waterSources", Target: "water_sources", Title: "Drinking water",
		Fields: []FieldSpec{
			field("primarySource", "primary_source", KindString),
			field("secondarySource", "secondary_source", KindString),
			field("distanceToSource", "distance_to_source", KindFloat),
			field("availabilityMonths", "availability_months", KindInt),
			field("quality", "quality", KindString),
			field("storageMethod", "storage_method", KindString),
			field("treatedBeforeUse", "treated_before_use", KindBool),
			field("shortageMonths", "shortage_months", KindStringList),
		},
	},
	{
		Key: "wasteManagement", Target: "waste_management", Title: "Waste management",
		Fields: []FieldSpec{
			field("solidWasteDisposal", "solid_waste_disposal", KindString),
			field("liquidWasteDisposal", "liquid_waste_disposal", KindString),
			field("compostPit", "compost_pit", KindBool),
			field("biogasPlant", "biogas_plant", KindBool),
			field("segregationPracticed", "segregation_practiced", KindBool),
			field("collectionService", "collection_service", KindBool),
		},
	},
	{
		Key: "entitlements", Target: "entitlements", Title: "Entitlements",
		Fields: []FieldSpec{
			field("rationCardType", "ration_card_type", KindString),
			field("rationCardNumber", "ration_card_number", KindString),
			field("aadhaarAvailable", "aadhaar_available", KindBool),
			field("voterIdAvailable", "voter_id_available", KindBool),
			field("bankAccountAvailable", "bank_account_available", KindBool),
			field("bankName", "bank_name", KindString),
			field("pensionReceived", "pension_received", KindBool),
			field("pensionType", "pension_type", KindString),
			field("insuranceCovered", "insurance_covered", KindBool),
			field("insuranceScheme", "insurance_scheme", KindString),
		},
	},
	{
		Key: "nutritionAccess", Target: "nutrition_access", Title: "Nutrition",
		Fields: []FieldSpec{
			field("anganwadiAccess", "anganwadi_access", KindBool),
			field("anganwadiDistance", "anganwadi_distance", KindFloat),
			field("midDayMealAvailed", "mid_day_meal_availed", KindBool),
			field("nutritionProgrammes", "nutrition_programmes", KindStringList),
			field("foodSecurityMonths", "food_security_months", KindInt),
			field("malnutritionReported", "malnutrition_reported", KindBool),
		},
	},
	{
		Key: "transportationFacilities", Target: "transportation_facilities", Title: "Transportation",
		Fields: []FieldSpec{
			field("nearestRoadType", "nearest_road_type", KindString),
			field("distanceToRoad", "distance_to_road", KindFloat),
			field("publicTransportAccess", "public_transport_access", KindBool),
			field("transportModes", "transport_modes", KindStringList),
			field("distanceToBusStop", "distance_to_bus_stop", KindFloat),
			field("vehicleOwned", "vehicle_owned", KindBool),
			field("vehicleTypes", "vehicle_types", KindStringList),
		},
	},
	{
		Key: "balasabhaParticipation", Target: "balasabha_participation", Title: "Balasabha",
		Fields: []FieldSpec{
			field("childrenEnrolled", "children_enrolled", KindBool),
			field("enrolledCount", "enrolled_count", KindInt),
			field("unitName", "unit_name", KindString),
			field("activitiesAttended", "activities_attended", KindStringList),
			field("meetingFrequency", "meeting_frequency", KindString),
		},
	},
	{
		Key: "agriculturalLand", Target: "agricultural_land", Title: "Agricultural land",
		Fields: []FieldSpec{
			field("landOwned", "land_owned", KindBool),
			field("landArea", "land_area", KindFloat),
			field("landType", "land_type", KindString),
			field("irrigationAvailable", "irrigation_available", KindBool),
			field("irrigationSource", "irrigation_source", KindString),
			field("soilType", "soil_type", KindString),
			field("landDocumentsAvailable", "land_documents_available", KindBool),
		},
	},
	{
		Key: "cultivationMode", Target: "cultivation_mode", Title: "Cultivation",
		Fields: []FieldSpec{
			field("cultivationPracticed", "cultivation_practiced", KindBool),
			field("mode", "mode", KindString),
			field("mainCrops", "main_crops", KindStringList),
			field("organicInputsUsed", "organic_inputs_used", KindBool),
			field("seedSource", "seed_source", KindString),
			field("machineryUsed", "machinery_used", KindBool),
		},
	},
	{
		Key: "traditionalFarming", Target: "traditional_farming", Title: "Traditional farming",
		Fields: []FieldSpec{
			field("practicesKnown", "practices_known", KindBool),
			field("practices", "practices", KindStringList),
			field("elderKnowledgeHolders", "elder_knowledge_holders", KindInt),
			field("seedsPreserved", "seeds_preserved", KindBool),
			field("seedVarieties", "seed_varieties", KindStringList),
			field("interestedInRevival", "interested_in_revival", KindBool),
		},
	},
	{
		Key: "wageEmployment", Target: "wage_employment", Title: "Wage employment",
		Fields: []FieldSpec{
			field("nregaCardAvailable", "nrega_card_available", KindBool),
			field("nregaCardNumber", "nrega_card_number", KindString),
			field("daysWorkedLastYear", "days_worked_last_year", KindInt),
			field("wagePendingAmount", "wage_pending_amount", KindFloat),
			field("workSiteDistance", "work_site_distance", KindFloat),
			field("willingForWork", "willing_for_work", KindBool),
			field("preferredWork", "preferred_work", KindStringList),
		},
	},
	{
		Key: "phoneConnectivity", Target: "phone_connectivity", Title: "Phone connectivity",
		Fields: []FieldSpec{
			field("hasPhone", "has_phone", KindBool),
			field("phoneCount", "phone_count", KindInt),
			field("smartphoneCount", "smartphone_count", KindInt),
			field("networkProvider", "network_provider", KindString),
			field("signalQuality", "signal_quality", KindString),
			field("internetAccess", "internet_access", KindBool),
			field("rechargeAffordable", "recharge_affordable", KindBool),
		},
	},
	{
		Key: "additionalInfo", Target: "additional_info", Title: "Additional information",
		Fields: []FieldSpec{
			field("specialCategory", "special_category", KindString),
			field("disabilityInHousehold", "disability_in_household", KindBool),
			field("aspirations", "aspirations", KindString),
			field("immediateNeeds", "immediate_needs", KindStringList),
			field("remarks", "remarks", KindString),
			field("surveyorNotes", "surveyor_notes", KindString),
		},
	},
	{
		Key: "familyMembers", Target: "family_members", Title: "Family members", Repeatable: true,
		Fields: []FieldSpec{
			field("name", "name", KindString),
			field("relationship", "relationship", KindString),
			field("gender", "gender", KindString),
			field("age", "age", KindInt),
			field("maritalStatus", "marital_status", KindString),
			field("education", "education", KindString),
			field("occupation", "occupation", KindString),
			field("monthlyIncome", "monthly_income", KindFloat),
			field("aadhaarAvailable", "aadhaar_available", KindBool),
			field("healthInsurance", "health_insurance", KindBool),
		},
	},
	{
		Key: "migrantWorkers", Target: "migrant_workers", Title: "Migrant workers", Repeatable: true,
		Fields: []FieldSpec{
			field("name", "name", KindString),
			field("destinationState", "destination_state", KindString),
			field("workType", "work_type", KindString),
			field("durationMonths", "duration_months", KindInt),
			field("monthlyRemittance", "monthly_remittance", KindFloat),
			field("contactAvailable", "contact_available", KindBool),
		},
	},
	{
		Key: "landAssets", Target: "land_assets", Title: "Land assets", Repeatable: true,
		Fields: []FieldSpec{
			field("surveyNumber", "survey_number", KindString),
			field("area", "area", KindFloat),
			field("landType", "land_type", KindString),
			field("ownershipDocument", "ownership_document", KindString),
			field("encumbrance", "encumbrance", KindBool),
			field("location", "location", KindString),
		},
	},
	{
		Key: "govtSchemeHouses", Target: "govt_scheme_houses", Title: "Government scheme houses", Repeatable: true,
		Fields: []FieldSpec{
			field("schemeName", "scheme_name", KindString),
			field("sanctionYear", "sanction_year", KindInt),
			field("amountSanctioned", "amount_sanctioned", KindFloat),
			field("amountReceived", "amount_received", KindFloat),
			field("constructionStatus", "construction_status", KindString),
			field("completed", "completed", KindBool),
		},
	},
	{
		Key: "healthConditions", Target: "health_conditions", Title: "Health conditions", Repeatable: true,
		Fields: []FieldSpec{
			field("memberName", "member_name", KindString),
			field("condition", "condition", KindString),
			field("duration", "duration", KindString),
			field("treatmentSource", "treatment_source", KindString),
			field("treatmentOngoing", "treatment_ongoing", KindBool),
			field("monthlyExpense", "monthly_expense", KindFloat),
			field("assistiveDeviceNeeded", "assistive_device_needed", KindBool),
		},
	},
	{
		Key: "educationDetails", Target: "education_details", Title: "Education", Repeatable: true,
		Fields: []FieldSpec{
			field("studentName", "student_name", KindString),
			field("institutionType", "institution_type", KindString),
			field("className", "class_name", KindString),
			field("distanceToInstitution", "distance_to_institution", KindFloat),
			field("scholarshipReceived", "scholarship_received", KindBool),
			field("scholarshipName", "scholarship_name", KindString),
			field("dropout", "dropout", KindBool),
			field("dropoutReason", "dropout_reason", KindString),
		},
	},
	{
		Key: "employmentDetails", Target: "employment_details", Title: "Employment", Repeatable: true,
		Fields: []FieldSpec{
			field("memberName", "member_name", KindString),
			field("employmentType", "employment_type", KindString),
			field("employer", "employer", KindString),
			field("workLocation", "work_location", KindString),
			field("monthlyIncome", "monthly_income", KindFloat),
			field("seasonal", "seasonal", KindBool),
			field("skillsKnown", "skills_known", KindStringList),
		},
	},
	{
		Key: "shgParticipation", Target: "shg_participation", Title: "SHG participation", Repeatable: true,
		Fields: []FieldSpec{
			field("memberName", "member_name", KindString),
			field("groupName", "group_name", KindString),
			field("groupType", "group_type", KindString),
			field("role", "role", KindString),
			field("yearsOfMembership", "years_of_membership", KindInt),
			field("savingsAmount", "savings_amount", KindFloat),
			field("loanAvailed", "loan_availed", KindBool),
		},
	},
	{
		Key: "loansDebts", Target: "loans_debts", Title: "Loans and debts", Repeatable: true,
		Fields: []FieldSpec{
			field("source", "source", KindString),
			field("purpose", "purpose", KindString),
			field("principalAmount", "principal_amount", KindFloat),
			field("outstandingAmount", "outstanding_amount", KindFloat),
			field("interestRate", "interest_rate", KindFloat),
			field("monthlyRepayment", "monthly_repayment", KindFloat),
			field("collateral", "collateral", KindString),
		},
	},
	{
		Key: "childGroups", Target: "child_groups", Title: "Child groups", Repeatable: true,
		Fields: []FieldSpec{
			field("childName", "child_name", KindString),
			field("groupName", "group_name", KindString),
			field("age", "age", KindInt),
			field("activities", "activities", KindStringList),
			field("meetingsAttended", "meetings_attended", KindInt),
		},
	},
	{
		Key: "livestockDetails", Target: "livestock_details", Title: "Livestock", Repeatable: true,
		Fields: []FieldSpec{
			field("animalType", "animal_type", KindString),
			field("count", "count", KindInt),
			field("purpose", "purpose", KindString),
			field("shelterAvailable", "shelter_available", KindBool),
			field("veterinaryAccess", "veterinary_access", KindBool),
			field("monthlyIncome", "monthly_income", KindFloat),
		},
	},
	{
		Key: "foodConsumption", Target: "food_consumption", Title: "Food consumption", Repeatable: true,
		Fields: []FieldSpec{
			field("foodItem", "food_item", KindString),
			field("frequency", "frequency", KindString),
			field("source", "source", KindString),
			field("sufficient", "sufficient", KindBool),
			field("monthlyExpense", "monthly_expense", KindFloat),
		},
	},
	{
		Key: "cashCrops", Target: "cash_crops", Title: "Cash crops", Repeatable: true,
		Fields: []FieldSpec{
			field("cropName", "crop_name", KindString),
			field("area", "area", KindFloat),
			field("annualYield", "annual_yield", KindFloat),
			field("annualIncome", "annual_income", KindFloat),
			field("soldTo", "sold_to", KindString),
			field("intercropped", "intercropped", KindBool),
		},
	},
	{
		Key: "forestResources", Target: "forest_resources", Title: "Forest resources", Repeatable: true,
		Fields: []FieldSpec{
			field("resourceName", "resource_name", KindString),
			field("collectionFrequency", "collection_frequency", KindString),
			field("usageType", "usage_type", KindString),
			field("monthlyIncome", "monthly_income", KindFloat),
			field("distanceToForest", "distance_to_forest", KindFloat),
			field("permitRequired", "permit_required", KindBool),
		},
	},
	{
		Key: "socialIssues", Target: "social_issues", Title: "Social issues", Repeatable: true,
		Fields: []FieldSpec{
			field("issueType", "issue_type", KindString),
			field("description", "description", KindString),
			field("affectedMembers", "affected_members", KindInt),
			field("reportedTo", "reported_to", KindString),
			field("resolved", "resolved", KindBool),
		},
	},
	{
		Key: "livelihoodOpportunities", Target: "livelihood_opportunities", Title: "Livelihood opportunities", Repeatable: true,
		Fields: []FieldSpec{
			field("opportunityType", "opportunity_type", KindString),
			field("interestedMembers", "interested_members", KindStringList),
			field("trainingNeeded", "training_needed", KindBool),
			field("trainingDetails", "training_details", KindString),
			field("expectedIncome", "expected_income", KindFloat),
		},
	},
	{
		Key: "artsSports", Target: "arts_sports", Title: "Arts and sports", Repeatable: true,
		Fields: []FieldSpec{
			field("memberName", "member_name", KindString),
			field("discipline", "discipline", KindString),
			field("level", "level", KindString),
			field("participationEvents", "participation_events", KindStringList),
			field("equipmentNeeded", "equipment_needed", KindBool),
		},
	},
	{
		Key: "publicInstitutions", Target: "public_institutions", Title: "Public institutions", Repeatable: true,
		Fields: []FieldSpec{
			field("institutionName", "institution_name", KindString),
			field("institutionType", "institution_type", KindString),
			field("distance", "distance", KindFloat),
			field("servicesAvailed", "services_availed", KindStringList),
			field("satisfactionLevel", "satisfaction_level", KindString),
			field("visitFrequency", "visit_frequency", KindString),
		},
	},
}

var (
	sectionsByKey map[string]*SectionSpec
	identityByKey map[string]FieldSpec
)

func init() {
	sectionsByKey = make(map[string]*SectionSpec, len(Sections))
	for i := range Sections {
		sectionsByKey[Sections[i].Key] = &Sections[i]
	}
	identityByKey = make(map[string]FieldSpec, len(IdentityFields))
	for _, f := range IdentityFields {
		identityByKey[f.Source] = f
	}
}

// SectionByKey looks up a section spec by its client-side key.
func SectionByKey(key string) (*SectionSpec, bool) {
	s, ok := sectionsByKey[key]
	return s, ok
}

// IdentityField looks up an identity field spec by its client-side key.
func IdentityField(source string) (FieldSpec, bool) {
	f, ok := identityByKey[source]
	return f, ok
}
