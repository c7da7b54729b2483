package model

import (
	"fmt"

	"github.com/FocuswithJustin/blueprint/core/encoding"
	"github.com/FocuswithJustin/blueprint/core/errors"
	"github.com/FocuswithJustin/blueprint/core/settings"
	"github.com/FocuswithJustin/blueprint/core/sign"
)

// ProductType identifies what a standard target produces.
type ProductType string

// Product types.
const (
	ProductExecutable     ProductType = "executable"
	ProductStaticLibrary  ProductType = "static-library"
	ProductDynamicLibrary ProductType = "dynamic-library"
	ProductFramework      ProductType = "framework"
	ProductBundle         ProductType = "bundle"
	ProductUnitTest       ProductType = "unit-test"
	// ProductPackage is the distinguished package-product type. Targets of
	// this type encode only their frameworks phase and dependency list.
	ProductPackage ProductType = "package-product"
)

// validProductTypes is the set of valid product types.
var validProductTypes = map[ProductType]bool{
	ProductExecutable:     true,
	ProductStaticLibrary:  true,
	ProductDynamicLibrary: true,
	ProductFramework:      true,
	ProductBundle:         true,
	ProductUnitTest:       true,
	ProductPackage:        true,
}

// IsValid returns true if the product type is valid.
func (p ProductType) IsValid() bool {
	return validProductTypes[p]
}

// targetCommon holds the base shape shared by Target and AggregateTarget:
// id, name, configurations, phases, dependencies, and imparted settings.
// It is embedded by value, not inherited.
type targetCommon struct {
	guid           string
	name           string
	signature      string
	configurations []*BuildConfiguration
	phases         []*BuildPhase
	dependencies   []*TargetDependency
	imparted       settings.Settings
}

// newTargetCommon validates and assembles the shared fields. The signature
// is left empty; the concrete constructor computes it over its own contents.
func newTargetCommon(collection, guid, name string, configs []*BuildConfiguration,
	phases []*BuildPhase, deps []*TargetDependency, imparted settings.Settings) (targetCommon, error) {

	if guid == "" {
		return targetCommon{}, errors.NewValidation(collection+".guid", "must not be empty")
	}
	if name == "" {
		return targetCommon{}, errors.NewValidation(collection+".name", "must not be empty")
	}

	configGUIDs := make([]string, len(configs))
	for i, c := range configs {
		configGUIDs[i] = c.GUID()
	}
	if err := checkDistinct(collection+".buildConfigurations", "guid", configGUIDs); err != nil {
		return targetCommon{}, err
	}

	phaseGUIDs := make([]string, len(phases))
	for i, p := range phases {
		phaseGUIDs[i] = p.GUID()
	}
	if err := checkDistinct(collection+".buildPhases", "guid", phaseGUIDs); err != nil {
		return targetCommon{}, err
	}

	if err := imparted.Validate(); err != nil {
		return targetCommon{}, err
	}

	return targetCommon{
		guid:           guid,
		name:           name,
		configurations: append([]*BuildConfiguration(nil), configs...),
		phases:         append([]*BuildPhase(nil), phases...),
		dependencies:   append([]*TargetDependency(nil), deps...),
		imparted:       imparted.Clone(),
	}, nil
}

// GUID returns the target identifier.
func (t *targetCommon) GUID() string { return t.guid }

// Name returns the target name.
func (t *targetCommon) Name() string { return t.name }

// Signature returns the content signature computed at construction.
func (t *targetCommon) Signature() string { return t.signature }

// Configurations returns the ordered build configurations.
func (t *targetCommon) Configurations() []*BuildConfiguration {
	return append([]*BuildConfiguration(nil), t.configurations...)
}

// BuildPhases returns the ordered build phases.
func (t *targetCommon) BuildPhases() []*BuildPhase {
	return append([]*BuildPhase(nil), t.phases...)
}

// Dependencies returns the ordered dependency edges.
func (t *targetCommon) Dependencies() []*TargetDependency {
	return append([]*TargetDependency(nil), t.dependencies...)
}

// ImpartedSettings returns a copy of the settings imparted to dependents.
func (t *targetCommon) ImpartedSettings() settings.Settings {
	return t.imparted.Clone()
}

// frameworksPhase returns the first frameworks phase, or nil.
func (t *targetCommon) frameworksPhase() *BuildPhase {
	for _, p := range t.phases {
		if p.Kind() == PhaseFrameworks {
			return p
		}
	}
	return nil
}

// baseContents assembles the fields shared by both target variants.
func (t *targetCommon) baseContents() encoding.Object {
	phases := make([]encoding.Object, len(t.phases))
	for i, p := range t.phases {
		phases[i] = p.contents()
	}
	o := encoding.Object{
		"guid":                t.guid,
		"name":                t.name,
		"buildConfigurations": configurationContents(t.configurations),
		"buildPhases":         phases,
		"dependencies":        dependencyContents(t.dependencies),
	}
	if !t.imparted.IsEmpty() {
		o["impartedBuildSettings"] = t.imparted.Flatten()
	}
	return o
}

// Target is a standard buildable target with a product.
type Target struct {
	targetCommon
	productType ProductType
	productName string
}

// NewTarget creates and signs a standard target.
func NewTarget(guid, name string, productType ProductType, productName string,
	configs []*BuildConfiguration, phases []*BuildPhase, deps []*TargetDependency,
	imparted settings.Settings) (*Target, error) {

	common, err := newTargetCommon("target", guid, name, configs, phases, deps, imparted)
	if err != nil {
		return nil, err
	}
	if !productType.IsValid() {
		return nil, errors.NewValidation("target.productType",
			fmt.Sprintf("invalid product type %q", string(productType)))
	}
	if productType != ProductPackage && productName == "" {
		return nil, errors.NewValidation("target.productName", "must not be empty")
	}

	t := &Target{
		targetCommon: common,
		productType:  productType,
		productName:  productName,
	}
	sig, err := sign.Digest(t.Contents())
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign target")
	}
	t.signature = sig
	return t, nil
}

// ProductType returns the product type.
func (t *Target) ProductType() ProductType { return t.productType }

// ProductName returns the product name, empty for package products.
func (t *Target) ProductName() string { return t.productName }

// Kind returns the discriminator tag.
func (t *Target) Kind() string { return TypeTarget }

func (t *Target) isProjectTarget() {}

// Contents returns the canonical body. Package products suppress most
// fields and emit only the frameworks phase (if present) and the dependency
// list; this is a variant-specific shortcut, not a general rule.
func (t *Target) Contents() encoding.Object {
	if t.productType == ProductPackage {
		o := encoding.Object{
			"guid":         t.guid,
			"name":         t.name,
			"productType":  string(t.productType),
			"dependencies": dependencyContents(t.dependencies),
		}
		if fw := t.frameworksPhase(); fw != nil {
			o["frameworksBuildPhase"] = fw.contents()
		}
		return o
	}
	o := t.baseContents()
	o["productType"] = string(t.productType)
	o["productName"] = t.productName
	return o
}

// AggregateTarget groups other targets without producing anything itself.
type AggregateTarget struct {
	targetCommon
}

// NewAggregateTarget creates and signs an aggregate target.
func NewAggregateTarget(guid, name string, configs []*BuildConfiguration,
	phases []*BuildPhase, deps []*TargetDependency, imparted settings.Settings) (*AggregateTarget, error) {

	common, err := newTargetCommon("aggregateTarget", guid, name, configs, phases, deps, imparted)
	if err != nil {
		return nil, err
	}

	t := &AggregateTarget{targetCommon: common}
	sig, err := sign.Digest(t.Contents())
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign aggregate target")
	}
	t.signature = sig
	return t, nil
}

// Kind returns the discriminator tag.
func (t *AggregateTarget) Kind() string { return TypeAggregate }

func (t *AggregateTarget) isProjectTarget() {}

// Contents returns the canonical body.
func (t *AggregateTarget) Contents() encoding.Object {
	return t.baseContents()
}
