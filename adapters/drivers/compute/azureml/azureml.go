package azureml

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	computedrv "github.com/kompox/amlops/adapters/drivers/compute"
)

const (
	driverID             = "azureml"
	defaultPollFrequency = 15 * time.Second
)

// driver implements the Azure Machine Learning compute driver.
type driver struct {
	TokenCredential azcore.TokenCredential
	PollFrequency   time.Duration

	// newAPI builds the SDK clients for a subscription; replaced in tests.
	newAPI func(subscriptionID string) (computeAPI, error)
}

// ID returns the driver identifier.
func (d *driver) ID() string { return driverID }

// init registers the Azure ML driver.
func init() {
	computedrv.Register(driverID, newDriver)
}

func newDriver(settings map[string]string) (computedrv.Driver, error) {
	get := func(k string) string {
		if settings == nil {
			return ""
		}
		return strings.TrimSpace(settings[k])
	}

	cred, err := newCredential(get)
	if err != nil {
		return nil, fmt.Errorf("create Azure credential: %w", err)
	}

	poll := defaultPollFrequency
	if v := get("AZURE_POLL_FREQUENCY"); v != "" {
		poll, err = time.ParseDuration(v)
		if err != nil || poll <= 0 {
			return nil, fmt.Errorf("invalid AZURE_POLL_FREQUENCY %q", v)
		}
	}

	d := &driver{TokenCredential: cred, PollFrequency: poll}
	d.newAPI = func(subscriptionID string) (computeAPI, error) {
		return newSDKAPI(subscriptionID, d.TokenCredential, d.PollFrequency)
	}
	return d, nil
}

// newCredential selects the credential by AZURE_AUTH_METHOD. An empty method
// uses the default credential chain (environment, workload identity, managed
// identity, Azure CLI, Azure Developer CLI).
func newCredential(get func(string) string) (azcore.TokenCredential, error) {
	switch method := get("AZURE_AUTH_METHOD"); method {
	case "", "default":
		opts := &azidentity.DefaultAzureCredentialOptions{}
		if tenantID := get("AZURE_TENANT_ID"); tenantID != "" {
			opts.TenantID = tenantID
		}
		return azidentity.NewDefaultAzureCredential(opts)
	case "client_secret":
		tenantID := get("AZURE_TENANT_ID")
		clientID := get("AZURE_CLIENT_ID")
		clientSecret := get("AZURE_CLIENT_SECRET")
		if tenantID == "" || clientID == "" || clientSecret == "" {
			return nil, fmt.Errorf("client_secret auth requires AZURE_TENANT_ID, AZURE_CLIENT_ID, AZURE_CLIENT_SECRET")
		}
		return azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
	case "client_certificate":
		tenantID := get("AZURE_TENANT_ID")
		clientID := get("AZURE_CLIENT_ID")
		certPath := get("AZURE_CLIENT_CERTIFICATE_PATH")
		if tenantID == "" || clientID == "" || certPath == "" {
			return nil, fmt.Errorf("client_certificate auth requires AZURE_TENANT_ID, AZURE_CLIENT_ID, AZURE_CLIENT_CERTIFICATE_PATH")
		}
		data, err := os.ReadFile(certPath)
		if err != nil {
			return nil, fmt.Errorf("read client certificate: %w", err)
		}
		var password []byte
		if p := get("AZURE_CLIENT_CERTIFICATE_PASSWORD"); p != "" {
			password = []byte(p)
		}
		certs, key, err := azidentity.ParseCertificates(data, password)
		if err != nil {
			return nil, fmt.Errorf("parse client certificate: %w", err)
		}
		return azidentity.NewClientCertificateCredential(tenantID, clientID, certs, key, nil)
	case "managed_identity":
		opts := &azidentity.ManagedIdentityCredentialOptions{}
		if clientID := get("AZURE_CLIENT_ID"); clientID != "" {
			opts.ID = azidentity.ClientID(clientID)
		}
		return azidentity.NewManagedIdentityCredential(opts)
	case "workload_identity":
		tenantID := get("AZURE_TENANT_ID")
		clientID := get("AZURE_CLIENT_ID")
		tokenFile := get("AZURE_FEDERATED_TOKEN_FILE")
		if tenantID == "" || clientID == "" || tokenFile == "" {
			return nil, fmt.Errorf("workload_identity auth requires AZURE_TENANT_ID, AZURE_CLIENT_ID, AZURE_FEDERATED_TOKEN_FILE")
		}
		return azidentity.NewWorkloadIdentityCredential(&azidentity.WorkloadIdentityCredentialOptions{
			TenantID:      tenantID,
			ClientID:      clientID,
			TokenFilePath: tokenFile,
		})
	case "azure_cli":
		return azidentity.NewAzureCLICredential(nil)
	case "azure_developer_cli":
		return azidentity.NewAzureDeveloperCLICredential(nil)
	default:
		return nil, fmt.Errorf("unsupported AZURE_AUTH_METHOD: %s", method)
	}
}
