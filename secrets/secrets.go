// Package secrets fetches the signing key from AWS Secrets Manager so it
// never has to live in the environment of a deployed bot.
package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Manager struct {
	svc *secretsmanager.Client
}

// NewManager loads the default AWS config chain (env, shared config, IAM
// role) and returns a Manager.
func NewManager(ctx context.Context) (*Manager, error) {
	awsCfg, err := aws_config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Manager{secretsmanager.NewFromConfig(awsCfg)}, nil
}

// Fetch returns the string value of the secret with the given id.
func (m *Manager) Fetch(ctx context.Context, secretID string) (string, error) {
	out, err := m.svc.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return "", fmt.Errorf("get secret %s: %w", secretID, err)
	}
	if out.SecretString == nil {
		return "", errors.New("secret has no string value")
	}
	return *out.SecretString, nil
}
