// Package naming validates the Azure resource names handled by amlops.
package naming

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	computeNameMinLength       = 2
	computeNameMaxLength       = 16
	resourceGroupNameMaxLength = 90
	databricksNameMinLength    = 3
	databricksNameMaxLength    = 64
	workspaceNameMinLength     = 3
	workspaceNameMaxLength     = 33
)

var (
	computeNamePattern       = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*[A-Za-z0-9]$`)
	resourceGroupNamePattern = regexp.MustCompile(`^[-\w.()]+$`)
	databricksNamePattern    = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	workspaceNamePattern     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
)

func validateLength(kind, name string, minimum, maximum int) error {
	if name == "" {
		return fmt.Errorf("%s name must not be empty", kind)
	}
	if len(name) < minimum || len(name) > maximum {
		return fmt.Errorf("%s name must be between %d and %d characters", kind, minimum, maximum)
	}
	return nil
}

// ValidateComputeName checks an AML compute target name: letters, digits and
// hyphens, starting with a letter and not ending with a hyphen.
func ValidateComputeName(name string) error {
	if err := validateLength("compute", name, computeNameMinLength, computeNameMaxLength); err != nil {
		return err
	}
	if !computeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid compute name %q: must start with a letter and contain only letters, digits and hyphens", name)
	}
	return nil
}

// ValidateResourceGroupName checks an Azure resource group name.
func ValidateResourceGroupName(name string) error {
	if err := validateLength("resource group", name, 1, resourceGroupNameMaxLength); err != nil {
		return err
	}
	if !resourceGroupNamePattern.MatchString(name) || strings.HasSuffix(name, ".") {
		return fmt.Errorf("invalid resource group name %q", name)
	}
	return nil
}

// ValidateWorkspaceName checks an AML workspace name.
func ValidateWorkspaceName(name string) error {
	if err := validateLength("workspace", name, workspaceNameMinLength, workspaceNameMaxLength); err != nil {
		return err
	}
	if !workspaceNamePattern.MatchString(name) {
		return fmt.Errorf("invalid workspace name %q", name)
	}
	return nil
}

// ValidateDatabricksWorkspaceName checks an Azure Databricks workspace name.
func ValidateDatabricksWorkspaceName(name string) error {
	if err := validateLength("databricks workspace", name, databricksNameMinLength, databricksNameMaxLength); err != nil {
		return err
	}
	if !databricksNamePattern.MatchString(name) {
		return fmt.Errorf("invalid databricks workspace name %q", name)
	}
	return nil
}
