package rewrite

import (
	"fmt"
	"regexp"
)

// presence builds a presence-checked rule.
func presence(pattern, replacement, description string) Rule {
	return Rule{
		Pattern:     regexp.MustCompile(pattern),
		Replacement: replacement,
		Description: description,
	}
}

// counted builds a count-checked rule.
func counted(pattern, replacement, description string) Rule {
	r := presence(pattern, replacement, description)
	r.Counted = true
	return r
}

// Catalog returns the ordered phases of the ProcessSegment to Operation
// migration. Declarations are renamed before the references that point
// at them, relation types before the fields typed with them, and the
// legacy segmentCode/segmentName pair is removed before operationCode
// and operationName are promoted to take their place. The bare
// segmentType field rule only matches documents whose enum type
// reference already reads OperationType.
func Catalog() []Phase {
	return []Phase{
		{Name: "model declarations", Rules: []Rule{
			presence(`model ProcessSegment \{`,
				"model Operation { // ISA-95: Process Segment",
				"renamed ProcessSegment model"),
			presence(`model ProcessSegmentParameter \{`,
				"model OperationParameter { // ISA-95: Process Segment Parameter",
				"renamed ProcessSegmentParameter model"),
			presence(`model ProcessSegmentDependency \{`,
				"model OperationDependency { // ISA-95: Process Segment Dependency",
				"renamed ProcessSegmentDependency model"),
			presence(`model PersonnelSegmentSpecification \{`,
				"model PersonnelOperationSpecification { // ISA-95: Personnel Segment Specification",
				"renamed PersonnelSegmentSpecification model"),
			presence(`model EquipmentSegmentSpecification \{`,
				"model EquipmentOperationSpecification { // ISA-95: Equipment Segment Specification",
				"renamed EquipmentSegmentSpecification model"),
			presence(`model MaterialSegmentSpecification \{`,
				"model MaterialOperationSpecification { // ISA-95: Material Segment Specification",
				"renamed MaterialSegmentSpecification model"),
			presence(`model PhysicalAssetSegmentSpecification \{`,
				"model PhysicalAssetOperationSpecification { // ISA-95: Physical Asset Segment Specification",
				"renamed PhysicalAssetSegmentSpecification model"),
		}},
		{Name: "enum declarations", Rules: []Rule{
			presence(`enum ProcessSegmentType \{`,
				"enum OperationType { // ISA-95: Process Segment Type",
				"renamed ProcessSegmentType enum"),
		}},
		{Name: "table mappings", Rules: []Rule{
			presence(`@@map\("process_segments"\)`,
				`@@map("operations")`,
				"remapped process_segments table"),
			presence(`@@map\("process_segment_parameters"\)`,
				`@@map("operation_parameters")`,
				"remapped process_segment_parameters table"),
			presence(`@@map\("process_segment_dependencies"\)`,
				`@@map("operation_dependencies")`,
				"remapped process_segment_dependencies table"),
			presence(`@@map\("personnel_segment_specifications"\)`,
				`@@map("personnel_operation_specifications")`,
				"remapped personnel_segment_specifications table"),
			presence(`@@map\("equipment_segment_specifications"\)`,
				`@@map("equipment_operation_specifications")`,
				"remapped equipment_segment_specifications table"),
			presence(`@@map\("material_segment_specifications"\)`,
				`@@map("material_operation_specifications")`,
				"remapped material_segment_specifications table"),
			presence(`@@map\("physical_asset_segment_specifications"\)`,
				`@@map("physical_asset_operation_specifications")`,
				"remapped physical_asset_segment_specifications table"),
		}},
		{Name: "relation field types", Rules: []Rule{
			counted(`ProcessSegment\[\]`, "Operation[]",
				"renamed ProcessSegment[] arrays"),
			counted(`ProcessSegment\?`, "Operation?",
				"renamed ProcessSegment? references"),
			counted(`ProcessSegment @relation`, "Operation @relation",
				"renamed ProcessSegment relations"),
			counted(`ProcessSegmentParameter\[\]`, "OperationParameter[]",
				"renamed ProcessSegmentParameter[] arrays"),
			counted(`ProcessSegmentDependency\[\]`, "OperationDependency[]",
				"renamed ProcessSegmentDependency[] arrays"),
			counted(`PersonnelSegmentSpecification\[\]`, "PersonnelOperationSpecification[]",
				"renamed PersonnelSegmentSpecification[] arrays"),
			counted(`EquipmentSegmentSpecification\[\]`, "EquipmentOperationSpecification[]",
				"renamed EquipmentSegmentSpecification[] arrays"),
			counted(`MaterialSegmentSpecification\[\]`, "MaterialOperationSpecification[]",
				"renamed MaterialSegmentSpecification[] arrays"),
			counted(`PhysicalAssetSegmentSpecification\[\]`, "PhysicalAssetOperationSpecification[]",
				"renamed PhysicalAssetSegmentSpecification[] arrays"),
		}},
		{Name: "relation field names", Rules: []Rule{
			counted(`processSegments\s+Operation\[\]`, "operations          Operation[]",
				"renamed processSegments field"),
			counted(`processSegment\s+Operation\?`, "operation       Operation?",
				"renamed processSegment field"),
			counted(`processSegment\s+Operation @relation`, "operation Operation @relation",
				"renamed processSegment relation field"),
			counted(`parentSegment\s+Operation\?`, "parentOperation   Operation?",
				"renamed parentSegment field"),
			counted(`childSegments\s+Operation\[\]`, "childOperations   Operation[]",
				"renamed childSegments field"),
			counted(`dependentSegment\s+Operation @relation`, "dependentOperation    Operation @relation",
				"renamed dependentSegment field"),
			counted(`prerequisiteSegment\s+Operation @relation`, "prerequisiteOperation Operation @relation",
				"renamed prerequisiteSegment field"),
			counted(`segmentType\s+OperationType`, "operationType OperationType",
				"renamed segmentType field"),
			counted(`segment\s+Operation @relation`, "operation Operation @relation",
				"renamed segment relation fields"),
		}},
		{Name: "identifier fields", Rules: []Rule{
			counted(`processSegmentId\s+String\?`, "operationId String?",
				"renamed processSegmentId field"),
			counted(`processSegmentId\s+String `, "operationId String ",
				"renamed required processSegmentId field"),
			counted(`parentSegmentId\s+String\?`, "parentOperationId String?",
				"renamed parentSegmentId field"),
			counted(`dependentSegmentId\s+String`, "dependentOperationId    String",
				"renamed dependentSegmentId field"),
			counted(`prerequisiteSegmentId\s+String`, "prerequisiteOperationId String",
				"renamed prerequisiteSegmentId field"),
			counted(`segmentId\s+String`, "operationId String",
				"renamed segmentId field"),
		}},
		{Name: "relation references", Rules: []Rule{
			counted(`\[processSegmentId\]`, "[operationId]",
				"renamed processSegmentId references"),
			counted(`\[parentSegmentId\]`, "[parentOperationId]",
				"renamed parentSegmentId references"),
			counted(`\[dependentSegmentId\]`, "[dependentOperationId]",
				"renamed dependentSegmentId references"),
			counted(`\[prerequisiteSegmentId\]`, "[prerequisiteOperationId]",
				"renamed prerequisiteSegmentId references"),
			counted(`\[segmentId\]`, "[operationId]",
				"renamed segmentId references"),
		}},
		{Name: "relation names", Rules: []Rule{
			counted(`"ProcessSegmentHierarchy"`, `"OperationHierarchy"`,
				"renamed ProcessSegmentHierarchy relation"),
			counted(`"DependentSegment"`, `"DependentOperation"`,
				"renamed DependentSegment relation"),
			counted(`"PrerequisiteSegment"`, `"PrerequisiteOperation"`,
				"renamed PrerequisiteSegment relation"),
			counted(`"ProcessSegmentStandardWI"`, `"OperationStandardWI"`,
				"renamed ProcessSegmentStandardWI relation"),
		}},
		{Name: "index references", Rules: []Rule{
			counted(`@@index\(\[parentSegmentId\]\)`, "@@index([parentOperationId])",
				"renamed parentSegmentId index"),
			counted(`@@index\(\[dependentSegmentId\]\)`, "@@index([dependentOperationId])",
				"renamed dependentSegmentId index"),
			counted(`@@index\(\[prerequisiteSegmentId\]\)`, "@@index([prerequisiteOperationId])",
				"renamed prerequisiteSegmentId index"),
			counted(`@@index\(\[segmentId\]\)`, "@@index([operationId])",
				"renamed segmentId index"),
			counted(`@@index\(\[segmentType\]\)`, "@@index([operationType])",
				"renamed segmentType index"),
			counted(`@@index\(\[processSegmentId\]\)`, "@@index([operationId])",
				"renamed processSegmentId index"),
		}},
		{Name: "unique constraints", Rules: []Rule{
			counted(`@@unique\(\[dependentSegmentId, prerequisiteSegmentId\]\)`,
				"@@unique([dependentOperationId, prerequisiteOperationId])",
				"renamed dependency unique constraint"),
			counted(`@@unique\(\[segmentId, parameterName\]\)`,
				"@@unique([operationId, parameterName])",
				"renamed parameter unique constraint"),
		}},
		{Name: "comment references", Rules: []Rule{
			counted(`// Link to ProcessSegment`,
				"// Link to Operation (ISA-95: Process Segment)",
				"annotated Link to ProcessSegment comments"),
			// Anchored to the line end so the annotated form never
			// matches again on a later run.
			counted(`(?m)// Links to standard operation$`,
				"// Links to standard operation (ISA-95: Process Segment)",
				"annotated standard operation comments"),
			counted(`overrides ProcessSegment`,
				"overrides Operation (ISA-95: ProcessSegment)",
				"annotated override comments"),
		}},
		{Name: "legacy field removal", Rules: []Rule{
			// Non-greedy scan bounded by the opening of the Operation
			// block; the two field lines must be consecutive. The match
			// starts after the preceding newline and ends after
			// segmentName's, so surrounding lines keep their exact
			// indentation.
			presence(`(model Operation \{[^}]*?\n)[ \t]+segmentCode[ \t]+String[ \t]+@unique[^\n]*\n[ \t]+segmentName[ \t]+String[^\n]*\n`,
				"${1}",
				"removed segmentCode and segmentName from Operation model"),
		}},
		{Name: "field promotions", Rules: []Rule{
			presence(`operationCode\s+String\?[^\n]*`,
				"operationCode           String  @unique // ISA-95: segmentCode (Oracle/Teamcenter terminology)",
				"promoted operationCode to required unique field"),
			presence(`operationName\s+String\?[^\n]*`,
				"operationName           String  // ISA-95: segmentName (Oracle/Teamcenter terminology)",
				"promoted operationName to required field"),
		}},
	}
}

// ── preflight checks ─────────────────────────────────────────────────────

var (
	reSourceModel = regexp.MustCompile(`(?m)^model ProcessSegment \{`)
	reTargetModel = regexp.MustCompile(`(?m)^model Operation \{`)
)

// Warnings inspects a document before a run and reports conditions
// under which the catalog's global substitutions are not well defined.
// The rewrite itself never fails on these; callers decide how loudly to
// surface them.
func Warnings(doc string) []string {
	sources := len(reSourceModel.FindAllStringIndex(doc, -1))
	targets := len(reTargetModel.FindAllStringIndex(doc, -1))

	var warns []string
	if sources > 1 {
		warns = append(warns, fmt.Sprintf("document declares %d ProcessSegment model blocks; renames apply to all of them", sources))
	}
	if targets > 1 {
		warns = append(warns, fmt.Sprintf("document declares %d Operation model blocks; legacy field removal is only defined for a single block", targets))
	}
	if sources >= 1 && targets >= 1 {
		warns = append(warns, "document declares both ProcessSegment and Operation model blocks; renaming will produce duplicate Operation models")
	}
	return warns
}
