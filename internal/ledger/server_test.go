package ledger

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"regexp"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var anyPath = regexp.MustCompile(".*")

func uploadRequest(url, filename, contentType string, data []byte) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(h)
	Expect(err).NotTo(HaveOccurred())
	_, err = part.Write(data)
	Expect(err).NotTo(HaveOccurred())
	Expect(writer.Close()).To(Succeed())

	req, err := http.NewRequest("POST", url, body)
	Expect(err).NotTo(HaveOccurred())
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

var _ = Describe("Server", func() {
	var (
		db          *mockDB
		storage     *mockStorage
		extractor   *mockExtractor
		service     *Service
		server      *Server
		auth        BasicAuth
		ghttpServer *ghttp.Server
	)

	JustBeforeEach(func() {
		service = NewServiceWithDeps(db, extractor, testProcessor(), storage, nil,
			&mockIDGenerator{id: "id-1"}, &mockTimeSource{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)})
		server = NewServerWithMux(service, auth, http.NewServeMux())
		ghttpServer = ghttp.NewServer()
		for _, method := range []string{"GET", "POST", "DELETE", "OPTIONS"} {
			ghttpServer.RouteToHandler(method, anyPath, server.ServeHTTP)
		}
	})

	BeforeEach(func() {
		db = newMockDB()
		storage = newMockStorage()
		extractor = newMockExtractor()
		auth = BasicAuth{}
	})

	AfterEach(func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
	})

	Describe("POST /api/invoices", func() {
		It("should process the upload and return the record", func() {
			req := uploadRequest(ghttpServer.URL()+"/api/invoices", "SO-12345.pdf", "application/pdf", []byte("%PDF"))
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusCreated))
			var record Record
			Expect(json.NewDecoder(resp.Body).Decode(&record)).To(Succeed())
			Expect(record.ID).To(Equal("id-1"))
			Expect(record.Invoice.OrderNumber).To(Equal("S12345"))
			Expect(record.ContentType).To(Equal("application/pdf"))
		})

		It("should guess the content type from the file name", func() {
			req := uploadRequest(ghttpServer.URL()+"/api/invoices", "invoice.txt", "", []byte("text"))
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusCreated))
			Expect(db.records["id-1"].ContentType).To(Equal("text/plain"))
		})

		When("no file is sent", func() {
			It("should return Bad Request", func() {
				req, err := http.NewRequest("POST", ghttpServer.URL()+"/api/invoices", nil)
				Expect(err).NotTo(HaveOccurred())
				resp, err := http.DefaultClient.Do(req)
				Expect(err).NotTo(HaveOccurred())
				resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			})
		})

		When("the document has no text", func() {
			BeforeEach(func() {
				extractor.pages = nil
			})

			It("should return Unprocessable Entity with the error", func() {
				req := uploadRequest(ghttpServer.URL()+"/api/invoices", "SO-1.pdf", "application/pdf", []byte("%PDF"))
				resp, err := http.DefaultClient.Do(req)
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()

				Expect(resp.StatusCode).To(Equal(http.StatusUnprocessableEntity))
				var body map[string]string
				Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
				Expect(body["error"]).To(ContainSubstring("no page contents"))
			})
		})
	})

	Describe("GET /api/invoices", func() {
		BeforeEach(func() {
			db.records["a"] = &Record{ID: "a"}
			db.records["b"] = &Record{ID: "b"}
		})

		It("should return all records as JSON", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/invoices")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(Equal("application/json"))
			var records []*Record
			Expect(json.NewDecoder(resp.Body).Decode(&records)).To(Succeed())
			Expect(records).To(HaveLen(2))
		})
	})

	Describe("GET /api/invoices/{id}", func() {
		It("should return 404 for a missing record", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/invoices/missing")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("should return the record", func() {
			db.records["a"] = &Record{ID: "a", Source: "SO-1.pdf"}
			resp, err := http.Get(ghttpServer.URL() + "/api/invoices/a")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var record Record
			Expect(json.NewDecoder(resp.Body).Decode(&record)).To(Succeed())
			Expect(record.Source).To(Equal("SO-1.pdf"))
		})
	})

	Describe("GET /api/invoices/{id}/file", func() {
		It("should return the stored document", func() {
			db.records["a"] = &Record{ID: "a", Filename: "a_doc.pdf", ContentType: "application/pdf"}
			storage.files["a_doc.pdf"] = []byte("%PDF-1.4")

			resp, err := http.Get(ghttpServer.URL() + "/api/invoices/a/file")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(Equal("application/pdf"))
			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(Equal([]byte("%PDF-1.4")))
		})
	})

	Describe("DELETE /api/invoices/{id}", func() {
		It("should delete the record", func() {
			db.records["a"] = &Record{ID: "a", Filename: "a_doc.pdf"}
			storage.files["a_doc.pdf"] = []byte("x")

			req, err := http.NewRequest("DELETE", ghttpServer.URL()+"/api/invoices/a", nil)
			Expect(err).NotTo(HaveOccurred())
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			Expect(db.records).To(BeEmpty())
		})

		It("should return 404 for a missing record", func() {
			req, err := http.NewRequest("DELETE", ghttpServer.URL()+"/api/invoices/missing", nil)
			Expect(err).NotTo(HaveOccurred())
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("exports", func() {
		BeforeEach(func() {
			db.records["a"] = &Record{ID: "a", Source: "SO-1.pdf"}
		})

		It("should serve CSV", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/export.csv")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(Equal("text/csv"))
			body, _ := io.ReadAll(resp.Body)
			Expect(string(body)).To(ContainSubstring("SO-1.pdf"))
		})

		It("should serve XLSX", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/export.xlsx")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Disposition")).To(ContainSubstring("invoices.xlsx"))
		})
	})

	Describe("GET /metrics", func() {
		It("should expose the invoice counters", func() {
			req := uploadRequest(ghttpServer.URL()+"/api/invoices", "SO-12345.pdf", "application/pdf", []byte("%PDF"))
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()

			resp, err = http.Get(ghttpServer.URL() + "/metrics")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			Expect(string(body)).To(ContainSubstring(`invoice_tracker_invoices_processed_total{outcome="ok"} 1`))
		})
	})

	Describe("CORS", func() {
		It("should answer preflight requests", func() {
			req, err := http.NewRequest("OPTIONS", ghttpServer.URL()+"/api/invoices", nil)
			Expect(err).NotTo(HaveOccurred())
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			Expect(resp.Header.Get("Access-Control-Allow-Origin")).To(Equal("*"))
		})
	})

	Describe("basic auth", func() {
		BeforeEach(func() {
			auth = BasicAuth{Username: "admin", Password: "secret"}
		})

		It("should reject requests without credentials", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/invoices")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(resp.Header.Get("WWW-Authenticate")).To(ContainSubstring("Invoice Tracker"))
		})

		It("should reject wrong credentials", func() {
			req, _ := http.NewRequest("GET", ghttpServer.URL()+"/api/invoices", nil)
			req.SetBasicAuth("admin", "wrong")
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("should accept valid credentials", func() {
			req, _ := http.NewRequest("GET", ghttpServer.URL()+"/api/invoices", nil)
			req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("admin:secret")))
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
		})
	})
})
