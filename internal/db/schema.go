package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements bootstrap the Insurance schema and its tables. Each
// statement is guarded so initialisation is idempotent.
var schemaStatements = []string{
	`IF NOT EXISTS (SELECT * FROM sys.schemas WHERE name = 'Insurance')
	EXEC('CREATE SCHEMA Insurance')`,

	`IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'Insurance.Members') AND type in (N'U'))
	CREATE TABLE Insurance.Members (
		MemberID INT IDENTITY(1,1) PRIMARY KEY,
		MemberNumber VARCHAR(20) NOT NULL,
		Title VARCHAR(10) NULL,
		FirstName VARCHAR(50) NOT NULL,
		LastName VARCHAR(50) NOT NULL,
		DateOfBirth DATE NOT NULL,
		Gender VARCHAR(10) NOT NULL,
		Email VARCHAR(100) NULL,
		MobilePhone VARCHAR(20) NULL,
		HomePhone VARCHAR(20) NULL,
		AddressLine1 VARCHAR(100) NOT NULL,
		AddressLine2 VARCHAR(100) NULL,
		City VARCHAR(50) NOT NULL,
		State VARCHAR(3) NOT NULL,
		PostCode VARCHAR(10) NOT NULL,
		Country VARCHAR(50) NOT NULL DEFAULT 'Australia',
		MedicareNumber VARCHAR(15) NULL,
		LHCLoadingPercentage DECIMAL(5,2) DEFAULT 0.00,
		PHIRebateTier VARCHAR(10) DEFAULT 'Base',
		JoinDate DATE NOT NULL DEFAULT GETDATE(),
		IsActive BIT NOT NULL DEFAULT 1,
		LastModified DATETIME2 NOT NULL DEFAULT GETDATE()
	)`,

	`IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'Insurance.CoveragePlans') AND type in (N'U'))
	CREATE TABLE Insurance.CoveragePlans (
		PlanID INT IDENTITY(1,1) PRIMARY KEY,
		PlanCode VARCHAR(20) NOT NULL,
		PlanName VARCHAR(100) NOT NULL,
		PlanType VARCHAR(20) NOT NULL,
		HospitalTier VARCHAR(20) NULL,
		MonthlyPremium DECIMAL(10,2) NOT NULL,
		AnnualPremium DECIMAL(10,2) NOT NULL,
		ExcessOptions VARCHAR(100) NULL,
		WaitingPeriods VARCHAR(500) NULL,
		CoverageDetails VARCHAR(MAX) NULL,
		IsActive BIT NOT NULL DEFAULT 1,
		EffectiveDate DATE NOT NULL,
		EndDate DATE NULL,
		LastModified DATETIME2 NOT NULL DEFAULT GETDATE()
	)`,

	`IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'Insurance.Policies') AND type in (N'U'))
	CREATE TABLE Insurance.Policies (
		PolicyID INT IDENTITY(1,1) PRIMARY KEY,
		PolicyNumber VARCHAR(20) NOT NULL,
		PrimaryMemberID INT NOT NULL,
		PlanID INT NOT NULL,
		CoverageType VARCHAR(20) NOT NULL,
		StartDate DATE NOT NULL,
		EndDate DATE NULL,
		ExcessAmount DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		PremiumFrequency VARCHAR(20) NOT NULL DEFAULT 'Monthly',
		CurrentPremium DECIMAL(10,2) NOT NULL,
		RebatePercentage DECIMAL(5,2) NOT NULL DEFAULT 0.00,
		LHCLoadingPercentage DECIMAL(5,2) NOT NULL DEFAULT 0.00,
		Status VARCHAR(20) NOT NULL DEFAULT 'Active',
		PaymentMethod VARCHAR(20) NOT NULL DEFAULT 'Direct Debit',
		LastPremiumPaidDate DATE NULL,
		NextPremiumDueDate DATE NULL,
		LastModified DATETIME2 NOT NULL DEFAULT GETDATE(),
		CONSTRAINT FK_Policies_Members FOREIGN KEY (PrimaryMemberID) REFERENCES Insurance.Members (MemberID),
		CONSTRAINT FK_Policies_Plans FOREIGN KEY (PlanID) REFERENCES Insurance.CoveragePlans (PlanID)
	)`,

	`IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'Insurance.PolicyMembers') AND type in (N'U'))
	CREATE TABLE Insurance.PolicyMembers (
		PolicyMemberID INT IDENTITY(1,1) PRIMARY KEY,
		PolicyID INT NOT NULL,
		MemberID INT NOT NULL,
		RelationshipToPrimary VARCHAR(20) NOT NULL,
		StartDate DATE NOT NULL,
		EndDate DATE NULL,
		IsActive BIT NOT NULL DEFAULT 1,
		LastModified DATETIME2 NOT NULL DEFAULT GETDATE(),
		CONSTRAINT FK_PolicyMembers_Policies FOREIGN KEY (PolicyID) REFERENCES Insurance.Policies (PolicyID),
		CONSTRAINT FK_PolicyMembers_Members FOREIGN KEY (MemberID) REFERENCES Insurance.Members (MemberID),
		CONSTRAINT UQ_PolicyMembers_PolicyMember UNIQUE (PolicyID, MemberID)
	)`,

	`IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'Insurance.Providers') AND type in (N'U'))
	CREATE TABLE Insurance.Providers (
		ProviderID INT IDENTITY(1,1) PRIMARY KEY,
		ProviderNumber VARCHAR(20) NOT NULL,
		ProviderName VARCHAR(100) NOT NULL,
		ProviderType VARCHAR(50) NOT NULL,
		AddressLine1 VARCHAR(100) NOT NULL,
		AddressLine2 VARCHAR(100) NULL,
		City VARCHAR(50) NOT NULL,
		State VARCHAR(3) NOT NULL,
		PostCode VARCHAR(10) NOT NULL,
		Country VARCHAR(50) NOT NULL DEFAULT 'Australia',
		Phone VARCHAR(20) NULL,
		Email VARCHAR(100) NULL,
		IsPreferredProvider BIT NOT NULL DEFAULT 0,
		AgreementStartDate DATE NULL,
		AgreementEndDate DATE NULL,
		IsActive BIT NOT NULL DEFAULT 1,
		LastModified DATETIME2 NOT NULL DEFAULT GETDATE()
	)`,

	`IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'Insurance.Claims') AND type in (N'U'))
	CREATE TABLE Insurance.Claims (
		ClaimID INT IDENTITY(1,1) PRIMARY KEY,
		ClaimNumber VARCHAR(20) NOT NULL,
		PolicyID INT NOT NULL,
		MemberID INT NOT NULL,
		ProviderID INT NOT NULL,
		ServiceDate DATE NOT NULL,
		SubmissionDate DATE NOT NULL,
		ClaimType VARCHAR(20) NOT NULL,
		ServiceDescription VARCHAR(200) NOT NULL,
		MBSItemNumber VARCHAR(20) NULL,
		ChargedAmount DECIMAL(10,2) NOT NULL,
		MedicareAmount DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		InsuranceAmount DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		GapAmount DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		ExcessApplied DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		Status VARCHAR(20) NOT NULL DEFAULT 'Submitted',
		ProcessedDate DATE NULL,
		PaymentDate DATE NULL,
		RejectionReason VARCHAR(200) NULL,
		LastModified DATETIME2 NOT NULL DEFAULT GETDATE(),
		CONSTRAINT FK_Claims_Policies FOREIGN KEY (PolicyID) REFERENCES Insurance.Policies (PolicyID),
		CONSTRAINT FK_Claims_Members FOREIGN KEY (MemberID) REFERENCES Insurance.Members (MemberID),
		CONSTRAINT FK_Claims_Providers FOREIGN KEY (ProviderID) REFERENCES Insurance.Providers (ProviderID)
	)`,

	`IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'Insurance.PremiumPayments') AND type in (N'U'))
	CREATE TABLE Insurance.PremiumPayments (
		PaymentID INT IDENTITY(1,1) PRIMARY KEY,
		PolicyID INT NOT NULL,
		PaymentDate DATE NOT NULL,
		PaymentAmount DECIMAL(10,2) NOT NULL,
		PaymentMethod VARCHAR(20) NOT NULL,
		PaymentReference VARCHAR(50) NULL,
		PaymentStatus VARCHAR(20) NOT NULL DEFAULT 'Successful',
		PeriodStartDate DATE NOT NULL,
		PeriodEndDate DATE NOT NULL,
		LastModified DATETIME2 NOT NULL DEFAULT GETDATE(),
		CONSTRAINT FK_PremiumPayments_Policies FOREIGN KEY (PolicyID) REFERENCES Insurance.Policies (PolicyID)
	)`,
}

// InitializeSchema creates the Insurance schema and operational tables if
// they do not already exist.
func InitializeSchema(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema initialisation failed: %w", err)
		}
	}
	log.Info("Database schema initialised")
	return nil
}
