package cognito

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"essay-backend/application/ports"
)

// CognitoAPI is the subset of the Cognito user pool client in use.
type CognitoAPI interface {
	SignUp(ctx context.Context, params *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	InitiateAuth(ctx context.Context, params *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	ConfirmSignUp(ctx context.Context, params *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
	ForgotPassword(ctx context.Context, params *cip.ForgotPasswordInput, optFns ...func(*cip.Options)) (*cip.ForgotPasswordOutput, error)
	ConfirmForgotPassword(ctx context.Context, params *cip.ConfirmForgotPasswordInput, optFns ...func(*cip.Options)) (*cip.ConfirmForgotPasswordOutput, error)
	ChangePassword(ctx context.Context, params *cip.ChangePasswordInput, optFns ...func(*cip.Options)) (*cip.ChangePasswordOutput, error)
	AdminUpdateUserAttributes(ctx context.Context, params *cip.AdminUpdateUserAttributesInput, optFns ...func(*cip.Options)) (*cip.AdminUpdateUserAttributesOutput, error)
}

// Provider implements ports.IdentityProvider on a Cognito user pool.
type Provider struct {
	client     CognitoAPI
	userPoolID string
	clientID   string
	logger     *zap.Logger
}

// NewProvider creates a new Cognito identity provider
func NewProvider(client CognitoAPI, userPoolID, clientID string, logger *zap.Logger) *Provider {
	return &Provider{client: client, userPoolID: userPoolID, clientID: clientID, logger: logger}
}

var _ ports.IdentityProvider = (*Provider)(nil)

func (p *Provider) SignUp(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error) {
	attrs := []types.AttributeType{
		{Name: aws.String("email"), Value: aws.String(in.Email)},
		{Name: aws.String("name"), Value: aws.String(in.Name)},
	}
	if in.PhoneNumber != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String("phone_number"), Value: aws.String(in.PhoneNumber)})
	}

	out, err := p.client.SignUp(ctx, &cip.SignUpInput{
		ClientId:       aws.String(p.clientID),
		Username:       aws.String(in.Email),
		Password:       aws.String(in.Password),
		UserAttributes: attrs,
	})
	if err != nil {
		return nil, p.classify("SignUp", err)
	}
	return &ports.SignUpResult{UserID: aws.ToString(out.UserSub), UserConfirmed: out.UserConfirmed}, nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*ports.AuthTokens, error) {
	return p.initiateAuth(ctx, "SignIn", types.AuthFlowTypeUserPasswordAuth, map[string]string{
		"USERNAME": email,
		"PASSWORD": password,
	})
}

func (p *Provider) RefreshToken(ctx context.Context, refreshToken string) (*ports.AuthTokens, error) {
	return p.initiateAuth(ctx, "RefreshToken", types.AuthFlowTypeRefreshTokenAuth, map[string]string{
		"REFRESH_TOKEN": refreshToken,
	})
}

func (p *Provider) initiateAuth(ctx context.Context, op string, flow types.AuthFlowType, params map[string]string) (*ports.AuthTokens, error) {
	out, err := p.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId:       aws.String(p.clientID),
		AuthFlow:       flow,
		AuthParameters: params,
	})
	if err != nil {
		return nil, p.classify(op, err)
	}
	if out.AuthenticationResult == nil {
		return nil, &ports.IdentityError{
			Kind: ports.IdentityErrOther,
			Op:   op,
			Err:  fmt.Errorf("unsupported authentication challenge %q", out.ChallengeName),
		}
	}

	res := out.AuthenticationResult
	return &ports.AuthTokens{
		AccessToken:  aws.ToString(res.AccessToken),
		IDToken:      aws.ToString(res.IdToken),
		RefreshToken: aws.ToString(res.RefreshToken),
		ExpiresIn:    res.ExpiresIn,
		TokenType:    aws.ToString(res.TokenType),
	}, nil
}

// ConfirmSignUp reports an already confirmed user as AlreadyConfirmed;
// Cognito signals that case with NotAuthorizedException.
func (p *Provider) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := p.client.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	if err == nil {
		return nil
	}
	idErr := p.classify("ConfirmSignUp", err)
	if idErr.Kind == ports.IdentityErrNotAuthorized {
		idErr.Kind = ports.IdentityErrAlreadyConfirmed
	}
	return idErr
}

func (p *Provider) ForgotPassword(ctx context.Context, email string) error {
	_, err := p.client.ForgotPassword(ctx, &cip.ForgotPasswordInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(email),
	})
	if err != nil {
		return p.classify("ForgotPassword", err)
	}
	return nil
}

func (p *Provider) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	_, err := p.client.ConfirmForgotPassword(ctx, &cip.ConfirmForgotPasswordInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(newPassword),
	})
	if err != nil {
		return p.classify("ConfirmForgotPassword", err)
	}
	return nil
}

func (p *Provider) ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error {
	_, err := p.client.ChangePassword(ctx, &cip.ChangePasswordInput{
		AccessToken:      aws.String(accessToken),
		PreviousPassword: aws.String(oldPassword),
		ProposedPassword: aws.String(newPassword),
	})
	if err != nil {
		return p.classify("ChangePassword", err)
	}
	return nil
}

func (p *Provider) UpdateUserAttributes(ctx context.Context, userID string, attrs ports.UserAttributes) error {
	var list []types.AttributeType
	if attrs.Name != nil {
		list = append(list, types.AttributeType{Name: aws.String("name"), Value: attrs.Name})
	}
	if attrs.PhoneNumber != nil {
		list = append(list, types.AttributeType{Name: aws.String("phone_number"), Value: attrs.PhoneNumber})
	}
	if len(list) == 0 {
		return nil
	}

	_, err := p.client.AdminUpdateUserAttributes(ctx, &cip.AdminUpdateUserAttributesInput{
		UserPoolId:     aws.String(p.userPoolID),
		Username:       aws.String(userID),
		UserAttributes: list,
	})
	if err != nil {
		return p.classify("UpdateUserAttributes", err)
	}
	return nil
}

// classify maps Cognito exceptions onto identity error kinds.
func (p *Provider) classify(op string, err error) *ports.IdentityError {
	kind := ports.IdentityErrOther

	var (
		codeMismatch     *types.CodeMismatchException
		expiredCode      *types.ExpiredCodeException
		notAuthorized    *types.NotAuthorizedException
		userNotFound     *types.UserNotFoundException
		userNotConfirmed *types.UserNotConfirmedException
		usernameExists   *types.UsernameExistsException
		invalidPassword  *types.InvalidPasswordException
		limitExceeded    *types.LimitExceededException
		tooManyRequests  *types.TooManyRequestsException
	)
	switch {
	case errors.As(err, &codeMismatch):
		kind = ports.IdentityErrCodeMismatch
	case errors.As(err, &expiredCode):
		kind = ports.IdentityErrCodeExpired
	case errors.As(err, &notAuthorized):
		kind = ports.IdentityErrNotAuthorized
	case errors.As(err, &userNotFound):
		kind = ports.IdentityErrUserNotFound
	case errors.As(err, &userNotConfirmed):
		kind = ports.IdentityErrUserNotConfirmed
	case errors.As(err, &usernameExists):
		kind = ports.IdentityErrUsernameExists
	case errors.As(err, &invalidPassword):
		kind = ports.IdentityErrInvalidPassword
	case errors.As(err, &limitExceeded), errors.As(err, &tooManyRequests):
		kind = ports.IdentityErrLimitExceeded
	}

	fields := []zap.Field{zap.String("op", op), zap.Stringer("kind", kind), zap.Error(err)}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields, zap.String("code", apiErr.ErrorCode()))
	}
	if kind == ports.IdentityErrOther {
		p.logger.Error("Identity provider call failed", fields...)
	} else {
		p.logger.Info("Identity provider rejected request", fields...)
	}

	return &ports.IdentityError{Kind: kind, Op: op, Err: err}
}
